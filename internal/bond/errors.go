package bond

import "fmt"

var (
	ErrBondNotFound        = fmt.Errorf("bond not found")
	ErrInvalidMaturityDate = fmt.Errorf("invalid maturity date")
	ErrInvalidIssueDate    = fmt.Errorf("issue date is not before maturity date")
	ErrBondMatured         = fmt.Errorf("reference date is on or after maturity")
	ErrInvalidTradeDates   = fmt.Errorf("sell date must be after buy date")
	ErrInvalidYield        = fmt.Errorf("yield must not be negative")
	ErrInvalidPrice        = fmt.Errorf("dirty price must be positive")
)
