package domain

// TransactionRecord represents one transaction extracted from a bank statement
// image by the model. The field semantics (lowercase three-word descriptions,
// YYYY-MM-DD dates, enumerated categories) are requested of the model through
// the response schema; they are not re-validated locally.
type TransactionRecord struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Type        string  `json:"type"`
	Icon        string  `json:"icon"`
	AccountID   string  `json:"accountId"`
}

// Allowed values requested of the model for the enumerated fields.
var (
	TransactionCategories = []string{
		"Income",
		"Food",
		"Shopping",
		"Entertainment",
		"Bills",
		"Transport",
		"Health",
		"Electronics",
		"Software",
	}

	TransactionTypes = []string{"income", "expense"}

	TransactionIcons = []string{"shopping-bag", "shopping-cart", "briefcase"}
)

// DefaultAccountID is the fixed account every extracted transaction is
// attributed to.
const DefaultAccountID = "2"
