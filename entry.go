package nova2k

// InvalidRow fills every field of the entry of a row too short to classify.
const InvalidRow = "Invalid Row"

// Label tags a ledger entry for the accounting tool.
type Label string

const (
	LabelNone          Label = ""
	LabelFee           Label = "fee"
	LabelWithdrawalFee Label = "withdrawal-fee"
	LabelDeposit       Label = "deposit"
	LabelWithdrawal    Label = "withdrawal"
	LabelReward        Label = "reward"
	LabelAirdrop       Label = "airdrop"
	LabelTrade         Label = "trade"
	LabelBuy           Label = "buy"
	LabelSell          Label = "sell"
)

// IsFee reports whether entries with this label carry only a fee.
func (l Label) IsFee() bool { return l == LabelFee || l == LabelWithdrawalFee }

// LedgerHeader is the header of the ledger CSV, in LedgerEntry field order.
var LedgerHeader = []string{
	"Date", "Sent Amount", "Sent Currency",
	"Received Amount", "Received Currency",
	"Fee Amount", "Fee Currency",
	"Net Worth Amount", "Net Worth Currency",
	"Label", "Description", "TxHash",
}

// LedgerEntry is one line of the ledger import.
//
// Amounts are unsigned, the direction is given by the field they are in.
// Net worth and transaction hash are not known from a statement and are
// always empty.
type LedgerEntry struct {
	Date             string
	SentAmount       Amount
	SentCurrency     string
	ReceivedAmount   Amount
	ReceivedCurrency string
	FeeAmount        Amount
	FeeCurrency      string
	NetWorthAmount   Amount
	NetWorthCurrency string
	Label            Label
	Description      string
	TxHash           string
}

// InvalidRowEntry returns the sentinel entry emitted for rows that cannot
// be classified.
func InvalidRowEntry() LedgerEntry {
	return LedgerEntry{
		Date:             InvalidRow,
		SentAmount:       InvalidRow,
		SentCurrency:     InvalidRow,
		ReceivedAmount:   InvalidRow,
		ReceivedCurrency: InvalidRow,
		FeeAmount:        InvalidRow,
		FeeCurrency:      InvalidRow,
		NetWorthAmount:   InvalidRow,
		NetWorthCurrency: InvalidRow,
		Label:            InvalidRow,
		Description:      InvalidRow,
		TxHash:           InvalidRow,
	}
}

// IsInvalid reports whether e is the invalid row sentinel.
func (e LedgerEntry) IsInvalid() bool { return e.Label == InvalidRow }

// HasTransfer reports whether something was sent or received.
func (e LedgerEntry) HasTransfer() bool {
	return e.SentAmount != "" || e.ReceivedAmount != ""
}

// setSent sets the sent leg, without sign.
func (e *LedgerEntry) setSent(a Amount, currency string) {
	e.SentAmount, e.SentCurrency = a.Unsigned(), currency
}

// setReceived sets the received leg, without sign.
func (e *LedgerEntry) setReceived(a Amount, currency string) {
	e.ReceivedAmount, e.ReceivedCurrency = a.Unsigned(), currency
}

// setFee sets the fee, without sign.
func (e *LedgerEntry) setFee(a Amount, currency string) {
	e.FeeAmount, e.FeeCurrency = a.Unsigned(), currency
}

// Record returns the entry fields in LedgerHeader order.
func (e LedgerEntry) Record() []string {
	return []string{
		e.Date,
		string(e.SentAmount), e.SentCurrency,
		string(e.ReceivedAmount), e.ReceivedCurrency,
		string(e.FeeAmount), e.FeeCurrency,
		string(e.NetWorthAmount), e.NetWorthCurrency,
		string(e.Label),
		e.Description,
		e.TxHash,
	}
}
