// Package ofx turns OFX/QFX bank statements into transaction drafts that can
// be created through the backend.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/dmatrios/ahorrape-front/internal/validate"
	"github.com/shopspring/decimal"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// Opening tags at end of line that lost their closing bracket.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

var cardPrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"DEBIT PURCHASE ",
	"COMPRA POS ",
}

// Draft is one statement line ready to become a transaction.
type Draft struct {
	Amount      decimal.Decimal
	FITID       string
	Account     string
	Description string
	Date        model.Date
	Kind        model.Kind
}

// Form builds the transaction form for d, picking the category by kind.
func (d Draft) Form(incomeCategory, expenseCategory int64) validate.TransactionForm {
	category := expenseCategory
	if d.Kind == model.KindIncome {
		category = incomeCategory
	}
	return validate.TransactionForm{
		Kind:        d.Kind,
		Amount:      d.Amount.StringFixed(2),
		Date:        d.Date.String(),
		Description: d.Description,
		CategoryID:  category,
	}
}

// Parser reads OFX/QFX statements.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a parser. A nil logger uses slog.Default.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

func preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// Parse reads every bank and credit card statement in r. Zero amounts are
// skipped since the backend rejects them.
func (p *Parser) Parse(ctx context.Context, r io.Reader) ([]Draft, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var drafts []Draft
	var statements int
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			statements++
			drafts = p.appendDrafts(drafts, stmt.BankTranList.Transactions, string(stmt.BankAcctFrom.AcctID))
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			statements++
			drafts = p.appendDrafts(drafts, stmt.BankTranList.Transactions, string(stmt.CCAcctFrom.AcctID))
		}
	}

	p.logger.Info("Parsed OFX file", "drafts", len(drafts), "statements", statements)
	return drafts, nil
}

func (p *Parser) appendDrafts(drafts []Draft, txns []ofxgo.Transaction, account string) []Draft {
	for _, tx := range txns {
		draft, err := convert(tx, account)
		if err != nil {
			p.logger.Warn("Skipping statement line", "fitid", string(tx.FiTID), "error", err)
			continue
		}
		if draft.Amount.IsZero() {
			p.logger.Debug("Skipping zero amount line", "fitid", draft.FITID)
			continue
		}
		drafts = append(drafts, draft)
	}
	return drafts
}

func convert(tx ofxgo.Transaction, account string) (Draft, error) {
	amount, err := decimal.NewFromString(tx.TrnAmt.FloatString(2))
	if err != nil {
		return Draft{}, fmt.Errorf("invalid amount: %w", err)
	}
	if tx.DtPosted.IsZero() {
		return Draft{}, fmt.Errorf("missing posted date")
	}

	kind := model.KindIncome
	if amount.IsNegative() {
		kind = model.KindExpense
	}
	return Draft{
		FITID:       string(tx.FiTID),
		Account:     account,
		Kind:        kind,
		Amount:      amount.Abs(),
		Date:        model.NewDate(tx.DtPosted.Time),
		Description: description(tx),
	}, nil
}

// description prefers PAYEE, then NAME, then MEMO when NAME is generic.
func description(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := strings.TrimSpace(string(tx.Name))
	if tx.Memo != "" && isGeneric(name) {
		name = strings.TrimSpace(string(tx.Memo))
	}

	upper := strings.ToUpper(name)
	for _, prefix := range cardPrefixes {
		if strings.HasPrefix(upper, prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Leading "MM/DD " card dates.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}
	return name
}

func isGeneric(name string) bool {
	switch strings.ToUpper(name) {
	case "", "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE", "DEPOSIT":
		return true
	}
	return false
}
