package classify

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/etsledger/etsledger/internal/model"
)

// DateFormat is the layout of movement dates.
const DateFormat = "2006-01-02"

const (
	// MaxAmountDigits bounds the integer part of an amount.
	MaxAmountDigits = 12
	// AmountPlaces is the finest precision an amount may carry (cents).
	AmountPlaces = 2
	// amountScaleLimit rejects absurd exponents before any rescaling.
	amountScaleLimit = 18
)

// ValidationError describes one field of a raw movement that could not be
// classified.
type ValidationError struct {
	MovementID  string
	Field       string
	Description string
}

func (e ValidationError) Error() string {
	if e.MovementID == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Description)
	}
	return fmt.Sprintf("[%s] %s: %s", e.MovementID, e.Field, e.Description)
}

// ValidationErrors collects every problem found in one raw movement.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Classify normalizes a raw movement into a Movement. On failure the
// returned error is a ValidationErrors listing every offending field.
func Classify(raw model.RawMovement) (model.Movement, error) {
	c := classifier{raw: raw}
	m := c.run()
	if len(c.errs) > 0 {
		return model.Movement{}, c.errs
	}
	return m, nil
}

type classifier struct {
	raw  model.RawMovement
	errs ValidationErrors
}

func (c *classifier) fail(field, format string, args ...any) {
	c.errs = append(c.errs, ValidationError{
		MovementID:  c.raw.ID,
		Field:       field,
		Description: fmt.Sprintf(format, args...),
	})
}

func (c *classifier) run() model.Movement {
	m := model.Movement{
		ID:          strings.TrimSpace(c.raw.ID),
		Description: strings.TrimSpace(c.raw.Description),
	}

	kind, ok := model.ParseKind(c.raw.Kind)
	if !ok {
		c.fail("kind", "unknown kind %q", c.raw.Kind)
		return m
	}
	m.Kind = kind

	m.Amount = c.amount()
	m.Date = c.date()
	if kind == model.KindOrdinary && strings.TrimSpace(c.raw.Date) == "" {
		c.fail("date", "date is required for ordinary movements")
	}

	account, ok := model.ParseAccount(c.raw.Account)
	if !ok {
		c.fail("account", "unknown account %q", c.raw.Account)
	}
	m.Account = account

	if kind != model.KindOrdinary {
		c.surplus(&m)
		return m
	}

	direction, ok := model.ParseDirection(c.raw.Direction)
	if !ok {
		if strings.TrimSpace(c.raw.Direction) == "" {
			c.fail("direction", "direction is required")
		} else {
			c.fail("direction", "unknown direction %q", c.raw.Direction)
		}
		return m
	}
	m.Direction = direction

	if strings.TrimSpace(c.raw.Category) == "" {
		c.fail("category", "category is required for ordinary movements")
		return m
	}
	category, ok := model.ParseCategory(c.raw.Category)
	if !ok {
		c.fail("category", "unknown category %q", c.raw.Category)
		return m
	}
	m.Category = category
	if !category.AllowsDirection(direction) {
		c.fail("category", "%s is not valid for %s movements", category, direction)
	}

	m.Code = c.code(category, direction)
	m.AllocatedTo = c.allocation(category)
	return m
}

func (c *classifier) amount() decimal.Decimal {
	s := strings.TrimSpace(c.raw.Amount)
	if s == "" {
		c.fail("amount", "amount is required")
		return decimal.Zero
	}
	amt, err := decimal.NewFromString(s)
	if err != nil {
		c.fail("amount", "invalid amount %q", s)
		return decimal.Zero
	}
	if !amt.IsPositive() {
		c.fail("amount", "amount must be positive, got %s", s)
		return decimal.Zero
	}
	exp := amt.Exponent()
	if exp < -amountScaleLimit || (exp < -AmountPlaces && !amt.Equal(amt.Truncate(AmountPlaces))) {
		c.fail("amount", "amount %q has more than %d decimal places", s, AmountPlaces)
		return decimal.Zero
	}
	if exp > amountScaleLimit || len(amt.Coefficient().String())+int(exp) > MaxAmountDigits {
		c.fail("amount", "amount %q exceeds %d integer digits", s, MaxAmountDigits)
		return decimal.Zero
	}
	return amt
}

func (c *classifier) date() time.Time {
	s := strings.TrimSpace(c.raw.Date)
	if s == "" {
		return time.Time{}
	}
	d, err := time.Parse(DateFormat, s)
	if err != nil {
		c.fail("date", "invalid date %q", s)
	}
	return d
}

// surplus checks a carried prior-year balance: income into the kind's
// account, with no category, code, or allocation.
func (c *classifier) surplus(m *model.Movement) {
	m.Direction = model.DirectionIncome
	if d := strings.TrimSpace(c.raw.Direction); d != "" {
		if dir, ok := model.ParseDirection(d); !ok || dir != model.DirectionIncome {
			c.fail("direction", "%s must be recorded as income", m.Kind)
		}
	}

	want := model.AccountCash
	if m.Kind == model.KindPriorBankSurplus {
		want = model.AccountBank
	}
	if m.Account != "" && m.Account != want {
		c.fail("account", "%s belongs to account %s, not %s", m.Kind, want, m.Account)
	}
	m.Account = want

	if strings.TrimSpace(c.raw.Category) != "" {
		c.fail("category", "%s takes no category", m.Kind)
	}
	if strings.TrimSpace(c.raw.DescriptionCode) != "" {
		c.fail("description_code", "%s takes no description code", m.Kind)
	}
	if strings.TrimSpace(c.raw.TargetID) != "" || strings.TrimSpace(c.raw.TargetType) != "" {
		c.fail("allocation", "%s cannot be allocated", m.Kind)
	}
}

func (c *classifier) code(category model.Category, direction model.Direction) int {
	s := strings.TrimSpace(c.raw.DescriptionCode)
	if s == "" {
		return 0
	}
	if !AcceptsCodes(category) {
		c.fail("description_code", "description code not allowed for category %s", category)
		return 0
	}
	code, err := strconv.Atoi(s)
	if err != nil {
		c.fail("description_code", "invalid description code %q", s)
		return 0
	}
	if CodeLabel(category, direction, code) == "" {
		c.fail("description_code", "code %d is not in the %s %s catalog", code, category, direction)
		return 0
	}
	return code
}

func (c *classifier) allocation(category model.Category) string {
	targetID := strings.TrimSpace(c.raw.TargetID)
	targetType := strings.TrimSpace(c.raw.TargetType)
	if targetID == "" && targetType == "" {
		return ""
	}

	family, ok := category.Family()
	if !ok {
		c.fail("allocation", "%s movements cannot be allocated", category)
		return ""
	}
	if targetType != "" {
		tf, ok := model.ParseFamily(targetType)
		if !ok {
			c.fail("allocation", "unknown target type %q", targetType)
			return ""
		}
		if tf != family {
			c.fail("allocation", "target type %s does not match category %s", tf, category)
			return ""
		}
	}
	return targetID
}
