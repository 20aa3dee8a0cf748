package database

import (
	"os"

	"github.com/sirupsen/logrus"
)

var DB *Workbook

// Connect opens (or bootstraps) the workbook configured via WORKBOOK_PATH and
// stores the handle in the package-level DB.
func Connect() {
	path := os.Getenv("WORKBOOK_PATH")
	if path == "" {
		path = "data/database.xlsx"
	}

	wb, err := Open(path)
	if err != nil {
		logrus.WithError(err).WithField("path", path).Fatal("could not open workbook")
	}
	DB = wb
	logrus.WithField("path", path).Info("workbook ready")
}
