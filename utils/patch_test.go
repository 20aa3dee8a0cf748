package utils_test

import (
	"reflect"
	"testing"

	"notenledger-backend/utils"
)

type patchDTO struct {
	Name   *string `json:"Company_Name"`
	Phone  *string `json:"Phone"`
	Hidden *string `json:"-"`
	Plain  string  `json:"Plain"`
}

func sp(s string) *string { return &s }

func TestUpdatesFromPtrDTO(t *testing.T) {
	dto := patchDTO{
		Name:   sp("Acme"),
		Hidden: sp("secret"),
		Plain:  "ignored",
	}
	got := utils.UpdatesFromPtrDTO(&dto, nil)
	want := map[string]any{"Company_Name": "Acme"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("UpdatesFromPtrDTO = %v, want %v", got, want)
	}
}

func TestUpdatesFromPtrDTORenames(t *testing.T) {
	dto := patchDTO{Phone: sp("9000000001")}
	got := utils.UpdatesFromPtrDTO(&dto, map[string]string{"Phone": "Phone_Number"})
	if !reflect.DeepEqual(got, map[string]any{"Phone_Number": "9000000001"}) {
		t.Fatalf("renamed updates = %v", got)
	}
}

func TestUpdatesFromPtrDTONonPointerInput(t *testing.T) {
	if got := utils.UpdatesFromPtrDTO(patchDTO{Name: sp("x")}, nil); len(got) != 0 {
		t.Fatalf("non-pointer input produced %v", got)
	}
}

func TestParseIntDefault(t *testing.T) {
	cases := []struct {
		in   string
		def  int
		want int
	}{
		{"5", 10, 5},
		{" 12 ", 10, 12},
		{"", 10, 10},
		{"abc", 10, 10},
		{"-3", 10, 10},
		{"0", 10, 0},
	}
	for _, c := range cases {
		if got := utils.ParseIntDefault(c.in, c.def); got != c.want {
			t.Errorf("ParseIntDefault(%q, %d) = %d, want %d", c.in, c.def, got, c.want)
		}
	}
}
