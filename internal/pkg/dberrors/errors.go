package dberrors

import (
	"errors"

	"modernc.org/sqlite"
)

// SQLite's primary result code for constraint violations. Extended codes
// (foreign key, check, primary key) keep it in their low byte.
const sqliteConstraint = 19

// IsConstraintViolation reports whether err is a SQLite constraint failure of
// any class. The warehouse schema re-enforces what cleaning guarantees, so a
// hit here means a defective row reached the insert path.
func IsConstraintViolation(err error) bool {
	var serr *sqlite.Error
	return errors.As(err, &serr) && serr.Code()&0xff == sqliteConstraint
}
