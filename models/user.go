package models

import (
	"fmt"
	"strings"

	"notenledger-backend/database"
	"notenledger-backend/utils"

	"golang.org/x/crypto/bcrypt"
)

const (
	userSheet   = "Users"
	userIDField = "User_ID"
	userPrefix  = "USR"
)

// User carries the stored credential hash internally; the hash is never
// serialized outward and List/Get/Create/Update clear it before returning.
type User struct {
	UserID   string `json:"User_ID"`
	Name     string `json:"Name"`
	Email    string `json:"Email"`
	Role     string `json:"Role"`
	Active   string `json:"Active"`
	Password string `json:"-"`
}

func (u User) IsActive() bool {
	return !strings.EqualFold(strings.TrimSpace(u.Active), "false")
}

func (u *User) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u User) ComparePassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}

func (u User) sanitized() User {
	u.Password = ""
	return u
}

func userFromRow(r database.Row) User {
	return User{
		UserID:   r["User_ID"],
		Name:     r["Name"],
		Email:    r["Email"],
		Role:     r["Role"],
		Active:   r["Active"],
		Password: r["Password"],
	}
}

func (u User) row() database.Row {
	return database.Row{
		"User_ID":  u.UserID,
		"Name":     u.Name,
		"Email":    u.Email,
		"Role":     u.Role,
		"Active":   u.Active,
		"Password": u.Password,
	}
}

type UserInput struct {
	Name     string `json:"Name"`
	Email    string `json:"Email" validate:"required,email"`
	Role     string `json:"Role"`
	Active   string `json:"Active"`
	Password string `json:"Password" validate:"required"`
}

type UserPatch struct {
	Name     *string `json:"Name"`
	Email    *string `json:"Email"`
	Role     *string `json:"Role"`
	Active   *string `json:"Active"`
	Password *string `json:"Password"`
}

type UserRepo struct {
	DB *database.Workbook
}

func (r UserRepo) List() ([]User, error) {
	rows, err := r.DB.Load(userSheet)
	if err != nil {
		return nil, err
	}
	out := make([]User, 0, len(rows))
	for _, row := range rows {
		out = append(out, userFromRow(row).sanitized())
	}
	return out, nil
}

func (r UserRepo) Get(id string) (User, error) {
	rows, err := r.DB.Load(userSheet)
	if err != nil {
		return User{}, err
	}
	idx := findRow(rows, userIDField, id)
	if idx < 0 {
		return User{}, fmt.Errorf("%w: user %s", ErrNotFound, id)
	}
	return userFromRow(rows[idx]).sanitized(), nil
}

// FindByEmail matches case-insensitively and returns the user with the
// credential hash intact. For the login path only; never serialize the result.
func (r UserRepo) FindByEmail(email string) (User, error) {
	rows, err := r.DB.Load(userSheet)
	if err != nil {
		return User{}, err
	}
	for _, row := range rows {
		if strings.EqualFold(row["Email"], email) {
			return userFromRow(row), nil
		}
	}
	return User{}, fmt.Errorf("%w: user %s", ErrNotFound, email)
}

func (r UserRepo) Create(actor Actor, in UserInput) (User, error) {
	if !actor.IsAdmin() {
		return User{}, fmt.Errorf("%w: admin role required", ErrPermissionDenied)
	}
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return User{}, fmt.Errorf("%w: Email and Password are required", ErrValidation)
	}
	rows, err := r.DB.Load(userSheet)
	if err != nil {
		return User{}, err
	}
	for _, row := range rows {
		if strings.EqualFold(row["Email"], in.Email) {
			return User{}, fmt.Errorf("%w: email already exists", ErrValidation)
		}
	}

	id, err := r.DB.NextSequential(userSheet, userIDField, userPrefix)
	if err != nil {
		return User{}, err
	}
	u := User{
		UserID: id,
		Name:   in.Name,
		Email:  in.Email,
		Role:   in.Role,
		Active: in.Active,
	}
	if u.Role == "" {
		u.Role = RoleViewer
	}
	if u.Active == "" {
		u.Active = "TRUE"
	}
	if err := u.SetPassword(in.Password); err != nil {
		return User{}, err
	}
	if _, err := r.DB.Append(userSheet, database.Headers(userSheet), u.row()); err != nil {
		return User{}, err
	}
	return u.sanitized(), nil
}

func (r UserRepo) Update(actor Actor, id string, patch UserPatch) (User, error) {
	if !actor.IsAdmin() {
		return User{}, fmt.Errorf("%w: admin role required", ErrPermissionDenied)
	}
	rows, err := r.DB.Load(userSheet)
	if err != nil {
		return User{}, err
	}
	idx := findRow(rows, userIDField, id)
	if idx < 0 {
		return User{}, fmt.Errorf("%w: user %s", ErrNotFound, id)
	}

	updates := utils.UpdatesFromPtrDTO(&patch, nil)
	delete(updates, "Password")
	applyPatch(rows[idx], updates)
	if patch.Password != nil && *patch.Password != "" {
		u := User{}
		if err := u.SetPassword(*patch.Password); err != nil {
			return User{}, err
		}
		rows[idx]["Password"] = u.Password
	}
	if err := r.DB.Save(userSheet, database.Headers(userSheet), rows); err != nil {
		return User{}, err
	}
	return userFromRow(rows[idx]).sanitized(), nil
}

func (r UserRepo) Remove(actor Actor, id string) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: admin role required", ErrPermissionDenied)
	}
	rows, err := r.DB.Load(userSheet)
	if err != nil {
		return err
	}
	idx := findRow(rows, userIDField, id)
	if idx < 0 {
		return fmt.Errorf("%w: user %s", ErrNotFound, id)
	}
	rows = append(rows[:idx], rows[idx+1:]...)
	return r.DB.Save(userSheet, database.Headers(userSheet), rows)
}
