package backend

import "fmt"

// Op names one backend operation. Used for logging, errors and the mock's
// failure switches.
type Op string

const (
	OpFetchItems     Op = "fetch_items"
	OpFetchPage      Op = "fetch_page"
	OpFetchNextPage  Op = "fetch_next_page"
	OpFetchOrder     Op = "fetch_order"
	OpCancelOrder    Op = "cancel_order"
	OpFetchSettings  Op = "fetch_settings"
	OpUpdateSetting  Op = "update_setting"
	OpAddNote        Op = "add_note"
	OpFetchNickname  Op = "fetch_nickname"
	OpUpdateNickname Op = "update_nickname"
)

// AllOps lists every operation in a stable order.
func AllOps() []Op {
	return []Op{
		OpFetchItems,
		OpFetchPage,
		OpFetchNextPage,
		OpFetchOrder,
		OpCancelOrder,
		OpFetchSettings,
		OpUpdateSetting,
		OpAddNote,
		OpFetchNickname,
		OpUpdateNickname,
	}
}

// ParseOp validates an operation name.
func ParseOp(s string) (Op, error) {
	for _, op := range AllOps() {
		if string(op) == s {
			return op, nil
		}
	}
	return "", fmt.Errorf("unknown operation %q", s)
}

// pageOp distinguishes the first page from follow-up pages.
func pageOp(cursor ItemID) Op {
	if cursor == "" {
		return OpFetchPage
	}
	return OpFetchNextPage
}

// ItemID identifies a list item. It doubles as the pagination cursor.
type ItemID string

// Item is one entry of the item lists.
type Item struct {
	ID   ItemID
	Name string
}

// Page is one slice of the paginated item list.
type Page struct {
	Items   []Item
	HasMore bool
}

// OrderID identifies an order.
type OrderID string

// Order is the order shown on the order-info screen.
type Order struct {
	ID OrderID
}

// SettingID identifies a boolean setting.
type SettingID string

// Setting is one boolean setting as stored by the backend.
type Setting struct {
	ID      SettingID
	Name    string
	Checked bool
}
