package nova2k

import (
	"slices"
	"strings"
)

// Rule names, in precedence order. They are also the keys of [Keywords].
const (
	RuleTransactionFee   = "transaction-fee"
	RuleWithdrawalFee    = "withdrawal-fee"
	RuleFiatDeposit      = "fiat-deposit"
	RuleFiatWithdrawal   = "fiat-withdrawal"
	RuleCryptoDeposit    = "crypto-deposit"
	RuleReward           = "reward"
	RuleAirdrop          = "airdrop"
	RuleConvert          = "convert"
	RuleBuy              = "buy"
	RuleSell             = "sell"
	RuleCryptoWithdrawal = "crypto-withdrawal"
)

// Keywords used by the conversion pairing rather than by a classification
// rule.
const (
	KeywordConvertFee = "convert-fee"
	KeywordConvertLeg = "convert-leg"
)

// Keywords maps a rule name to the phrases that select it. A type matches a
// rule when its normalized text contains any of the rule phrases.
type Keywords map[string][]string

// DefaultKeywords returns the phrases used by NovaDAX statements, with their
// English equivalents.
func DefaultKeywords() Keywords {
	return Keywords{
		RuleTransactionFee:   {"taxa de transacao", "fee on transaction"},
		RuleWithdrawalFee:    {"taxa de saque", "withdrawal fee"},
		RuleFiatDeposit:      {"deposito em reais", "deposit in fiat"},
		RuleFiatWithdrawal:   {"saque em reais", "withdrawal in fiat"},
		RuleCryptoDeposit:    {"deposito de criptomoedas", "crypto deposit"},
		RuleReward:           {"redeemed bonus", "staking"},
		RuleAirdrop:          {"airdrop"},
		RuleConvert:          {"convert", "troca", "exchange", "swap"},
		RuleBuy:              {"compra", "buy"},
		RuleSell:             {"venda", "sell"},
		RuleCryptoWithdrawal: {"saque de criptomoedas", "crypto withdrawal"},
		KeywordConvertFee:    {"taxa de convert", "convert fee"},
		KeywordConvertLeg:    {"convert"},
	}
}

// Merge appends the phrases of extra to k, normalized. Duplicates are
// skipped.
func (k Keywords) Merge(extra Keywords) Keywords {
	for name, phrases := range extra {
		for _, p := range phrases {
			p = strings.TrimSpace(NormalizeText(p))
			if p == "" || slices.Contains(k[name], p) {
				continue
			}
			k[name] = append(k[name], p)
		}
	}
	return k
}

// Matcher returns a predicate matching normalized types containing any of
// the phrases of rule name.
func (k Keywords) Matcher(name string) func(string) bool {
	phrases := k[name]
	return func(normalized string) bool {
		for _, p := range phrases {
			if strings.Contains(normalized, p) {
				return true
			}
		}
		return false
	}
}

// RuleInput is what a Rule builds an entry from.
type RuleInput struct {
	Row LogicalRow
	// Amount is the signed value of the row.
	Amount Amount
	// Pair is the market of the row type, if any.
	Pair TradingPair
}

// Rule classifies one kind of statement transaction.
type Rule struct {
	Name  string
	Label Label
	// Match is called with the normalized type of the row.
	Match func(normalized string) bool
	// Build fills the amounts of the entry.
	Build func(e *LedgerEntry, in RuleInput)
}

// DefaultRules returns the classification rules in precedence order, first
// match wins.
func DefaultRules(k Keywords) []Rule {
	return []Rule{
		{RuleTransactionFee, LabelFee, k.Matcher(RuleTransactionFee), buildFee},
		{RuleWithdrawalFee, LabelWithdrawalFee, k.Matcher(RuleWithdrawalFee), buildFee},
		{RuleFiatDeposit, LabelDeposit, k.Matcher(RuleFiatDeposit), buildReceived},
		{RuleFiatWithdrawal, LabelWithdrawal, k.Matcher(RuleFiatWithdrawal), buildSent},
		{RuleCryptoDeposit, LabelDeposit, k.Matcher(RuleCryptoDeposit), buildReceived},
		{RuleReward, LabelReward, k.Matcher(RuleReward), buildReceived},
		{RuleAirdrop, LabelAirdrop, k.Matcher(RuleAirdrop), buildReceived},
		{RuleConvert, LabelTrade, k.Matcher(RuleConvert), buildLeg},
		{RuleBuy, LabelBuy, k.Matcher(RuleBuy), buildBuy},
		{RuleSell, LabelSell, k.Matcher(RuleSell), buildSell},
		{RuleCryptoWithdrawal, LabelWithdrawal, k.Matcher(RuleCryptoWithdrawal), buildSent},
	}
}

func buildFee(e *LedgerEntry, in RuleInput)      { e.setFee(in.Amount, in.Row.Currency) }
func buildSent(e *LedgerEntry, in RuleInput)     { e.setSent(in.Amount, in.Row.Currency) }
func buildReceived(e *LedgerEntry, in RuleInput) { e.setReceived(in.Amount, in.Row.Currency) }

// buildLeg uses the sign: a debit is the sent leg, anything else the
// received one.
func buildLeg(e *LedgerEntry, in RuleInput) {
	if in.Amount.IsNegative() {
		e.setSent(in.Amount, in.Row.Currency)
		return
	}
	e.setReceived(in.Amount, in.Row.Currency)
}

// buildBuy spends the quote currency and receives the base one. Without a
// market in the type, BRL is what is spent.
func buildBuy(e *LedgerEntry, in RuleInput) {
	cur := in.Row.Currency
	switch {
	case !in.Pair.IsZero() && cur == in.Pair.Quote:
		e.setSent(in.Amount, in.Pair.Quote)
	case !in.Pair.IsZero():
		e.setReceived(in.Amount, in.Pair.Base)
	case strings.EqualFold(cur, "BRL"):
		e.setSent(in.Amount, "BRL")
	default:
		e.setReceived(in.Amount, cur)
	}
}

// buildSell is the mirror of buildBuy.
func buildSell(e *LedgerEntry, in RuleInput) {
	cur := in.Row.Currency
	switch {
	case !in.Pair.IsZero() && cur == in.Pair.Quote:
		e.setReceived(in.Amount, in.Pair.Quote)
	case !in.Pair.IsZero():
		e.setSent(in.Amount, in.Pair.Base)
	case strings.EqualFold(cur, "BRL"):
		e.setReceived(in.Amount, "BRL")
	default:
		e.setSent(in.Amount, cur)
	}
}
