package repository

import (
	"database/sql"

	"gorm.io/gorm"
)

// TxManager runs a function inside one database transaction. Any error
// returned by the function rolls back every write performed so far.
// *gorm.DB satisfies this interface.
type TxManager interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}
