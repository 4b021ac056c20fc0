package models

// Record represents one executed contract on the floor sheet.
// Every field is kept as the text shown by the remote view; Buyer, Seller,
// Quantity, Rate and Amount have thousands separators removed.
//
// Column order (as rendered and as written to CSV):
//  1. SN
//  2. ContractNo
//  3. StockSymbol
//  4. Buyer
//  5. Seller
//  6. Quantity
//  7. Rate
//  8. Amount
type Record struct {
	SN          string
	ContractNo  string
	StockSymbol string
	Buyer       string
	Seller      string
	Quantity    string
	Rate        string
	Amount      string
}

// Fields returns the record in output column order.
func (r Record) Fields() []string {
	return []string{r.SN, r.ContractNo, r.StockSymbol, r.Buyer, r.Seller, r.Quantity, r.Rate, r.Amount}
}
