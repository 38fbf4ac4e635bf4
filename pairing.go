package nova2k

// FeeRecord is a "Taxa de Convert" row waiting for the conversion it
// belongs to.
type FeeRecord struct {
	Amount   Amount
	Currency string
	// Date is the statement date of the fee row, as written.
	Date string
}

// PairingState is the state of the conversion pairing between two rows.
//
// A conversion is recorded in statements as two rows, one per leg, possibly
// preceded by its fee row. Buffered holds the entry built from the first
// leg until the second one arrives. PendingFee holds the last fee row until
// a conversion of the same date opens.
//
// The zero value is the idle state.
type PairingState struct {
	Buffered   *LedgerEntry
	PendingFee *FeeRecord
}

// Idle reports whether no conversion is waiting for its second leg.
func (s PairingState) Idle() bool { return s.Buffered == nil }

// Pairing holds the predicates recognizing conversion rows.
type Pairing struct {
	IsConvertFee func(normalized string) bool
	IsConvertLeg func(normalized string) bool
}

// NewPairing builds the conversion predicates from k.
func NewPairing(k Keywords) Pairing {
	return Pairing{
		IsConvertFee: k.Matcher(KeywordConvertFee),
		IsConvertLeg: k.Matcher(KeywordConvertLeg),
	}
}

// Step consumes one row and returns the next state with the entries
// completed by this row, in output order.
//
// State is never shared: Step copies the buffered entry before changing it.
func (p Pairing) Step(c *Classifier, index int, s PairingState, row LogicalRow) (PairingState, []LedgerEntry) {
	normalized := NormalizeText(row.Type)

	switch {
	case p.IsConvertFee(normalized):
		s.PendingFee = &FeeRecord{
			Amount:   ExtractNumericValue(row.Value).Unsigned(),
			Currency: row.Currency,
			Date:     row.Date,
		}
		c.emit(index, SeverityInfo, row.Record(), "convert fee found: %s %s", s.PendingFee.Amount, s.PendingFee.Currency)
		return s, nil

	case p.IsConvertLeg(normalized) && s.Idle():
		entry := c.Classify(index, row)
		if fee := s.PendingFee; fee != nil && fee.Date == row.Date {
			entry.setFee(fee.Amount, fee.Currency)
			s.PendingFee = nil
			c.emit(index, SeverityInfo, row.Record(), "convert fee applied: %s %s", fee.Amount, fee.Currency)
		}
		s.Buffered = &entry
		return s, nil

	case p.IsConvertLeg(normalized):
		amount := ExtractNumericValue(row.Value)
		entry := *s.Buffered
		if amount.IsNegative() {
			entry.setSent(amount, row.Currency)
		} else {
			entry.setReceived(amount, row.Currency)
		}
		s.Buffered = nil
		return s, []LedgerEntry{entry}
	}

	entry := c.Classify(index, row)
	var out []LedgerEntry
	if !s.Idle() {
		c.emit(index, SeverityWarning, nil, "conversion interrupted before its second leg, flushing it")
		out = append(out, *s.Buffered)
		s.Buffered = nil
	}
	return s, append(out, entry)
}

// Flush ends the stream: a conversion still waiting for its second leg is
// emitted as is.
func (p Pairing) Flush(s PairingState) (PairingState, []LedgerEntry) {
	if s.Idle() {
		return s, nil
	}
	entry := *s.Buffered
	s.Buffered = nil
	return s, []LedgerEntry{entry}
}
