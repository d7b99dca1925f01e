package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/spendy-app/spendy/internal/model"
)

// OFXReader parses OFX/QFX bank and credit card statements into expense
// rows. Only debits survive; deposits and transfers are not expenses.
type OFXReader struct{}

// NewOFXReader creates a new OFX row source.
func NewOFXReader() *OFXReader {
	return &OFXReader{}
}

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocess fixes common formatting issues in OFX files: leading blank
// lines, mixed-case SEVERITY values, and SGML-style tags missing their
// closing angle bracket.
func (p *OFXReader) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	content = tagFixRegex.ReplaceAllString(content, "$1>")
	return content
}

// Parse reads an OFX/QFX statement and returns its expense rows.
func (p *OFXReader) Parse(_ context.Context, r io.Reader) ([]model.RawRecord, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var rows []model.RawRecord
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			rows = append(rows, p.convert(stmt.BankTranList.Transactions)...)
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			rows = append(rows, p.convert(stmt.BankTranList.Transactions)...)
		}
	}

	slog.Info("Parsed OFX file", "rows", len(rows))
	return rows, nil
}

func (p *OFXReader) convert(transactions []ofxgo.Transaction) []model.RawRecord {
	var rows []model.RawRecord
	for _, tx := range transactions {
		amount, _ := tx.TrnAmt.Float64()
		// OFX uses negative amounts for debits; positive ones are
		// deposits or refunds and are not expenses.
		if amount >= 0 {
			continue
		}

		item := p.itemName(tx)
		if item == "" {
			continue
		}

		rows = append(rows, model.RawRecord{
			Category: model.CategoryUnknown.String(),
			Item:     item,
			Amount:   -amount,
		})
	}
	return rows
}

func (p *OFXReader) itemName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}
	name := strings.TrimSpace(string(tx.Name))
	if name != "" {
		return name
	}
	return strings.TrimSpace(string(tx.Memo))
}
