package nova2k

// Classifier turns logical rows into ledger entries.
type Classifier struct {
	emitter
	rules []Rule
}

// NewClassifier returns a Classifier applying rules in order and reporting
// to sink.
func NewClassifier(rules []Rule, sink EventSink) *Classifier {
	return &Classifier{emitter: emitter{sink: sink}, rules: rules}
}

// Rules returns the classification rules in precedence order.
func (c *Classifier) Rules() []Rule { return c.rules }

// Match returns the first rule matching the type text, and false if none
// does.
func (c *Classifier) Match(typeText string) (Rule, bool) {
	normalized := NormalizeText(typeText)
	for _, r := range c.rules {
		if r.Match(normalized) {
			return r, true
		}
	}
	return Rule{}, false
}

// Classify returns the ledger entry of row. index is the row position in
// its stream and only used to report events.
//
// Anomalies (invalid date, missing value, unknown type) are reported as
// events and still produce an entry.
func (c *Classifier) Classify(index int, row LogicalRow) LedgerEntry {
	entry := LedgerEntry{
		Date:        ParseDate(row.Date),
		Description: row.Type,
	}
	if entry.Date == InvalidDate {
		c.emit(index, SeverityError, row.Record(), "invalid date: %q", row.Date)
	}

	amount := ExtractNumericValue(row.Value)
	if amount.IsZero() {
		c.emit(index, SeverityWarning, row.Record(), "value not found in %q", row.Value)
	}

	rule, ok := c.Match(row.Type)
	if !ok {
		c.emit(index, SeverityWarning, row.Record(), "unknown transaction type: %q", row.Type)
		return entry
	}
	rule.Build(&entry, RuleInput{
		Row:    row,
		Amount: amount,
		Pair:   ExtractTradingPair(row.Type),
	})
	entry.Label = rule.Label

	if !entry.HasTransfer() && !entry.Label.IsFee() {
		c.emit(index, SeverityWarning, row.Record(), "no sent or received amount for %q", row.Type)
	}
	return entry
}
