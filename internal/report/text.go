package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/etsledger/etsledger/internal/classify"
	"github.com/etsledger/etsledger/internal/fiscal"
)

var printer = message.NewPrinter(language.Italian)

// Money formats an amount the Italian way, e.g. 1.234,50.
func Money(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return printer.Sprint(number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Rate formats a coefficient as a percentage, e.g. 0.0072 -> 0,72%.
func Rate(d decimal.Decimal) string {
	f, _ := d.Mul(decimal.NewFromInt(100)).Float64()
	return printer.Sprint(number.Decimal(f, number.MaxFractionDigits(4))) + "%"
}

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *textWriter) table(header string, rows [][]string) {
	if t.err != nil {
		return
	}
	tw := tabwriter.NewWriter(t.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, header)
	for _, row := range rows {
		for _, cell := range row {
			fmt.Fprint(tw, cell, "\t")
		}
		fmt.Fprintln(tw)
	}
	t.err = tw.Flush()
}

func writeText(w io.Writer, r *fiscal.Report, issues classify.ValidationErrors) error {
	t := &textWriter{w: w}

	t.printf("Fiscal year %d: %s (%s)\n", r.FiscalYear, r.EntityName, r.EntityType)
	t.printf("Prior-year revenue: %s\n", Money(r.PriorYearRevenue))
	t.printf("General cost pool:  %s\n\n", Money(r.GeneralCostPool))

	t.printf("Activities of general interest (6%% test)\n")
	if len(r.GeneralInterest) == 0 {
		t.printf("  none\n")
	} else {
		var rows [][]string
		for _, a := range r.GeneralInterest {
			rows = append(rows, []string{a.Name, Money(a.TE), Money(a.TU), Money(a.CG), Money(a.TUEff), Money(a.TER), Money(a.Threshold), string(a.Verdict)})
		}
		t.table("Activity\tTE\tTU\tCG\tTU eff\tTER\tThreshold\tVerdict\t", rows)
	}

	summaries := func(title string, list []fiscal.ActivitySummary) {
		t.printf("\n%s\n", title)
		if len(list) == 0 {
			t.printf("  none\n")
			return
		}
		var rows [][]string
		for _, a := range list {
			name := a.Name
			if a.Occasional {
				name += " (occasional)"
			}
			rows = append(rows, []string{name, Money(a.TE), Money(a.TU), Money(a.CG), Money(a.TUEff), Money(a.Result)})
		}
		t.table("Activity\tTE\tTU\tCG\tTU eff\tResult\t", rows)
	}
	summaries("Diverse activities", r.Diverse)
	summaries("Fundraisers", r.Fundraisers)

	e := r.Entity
	t.printf("\nEntity commerciality test\n")
	t.printf("  A commercial AIG income         %s\n", Money(e.A))
	t.printf("  B diverse income (no sponsors)  %s\n", Money(e.B))
	t.printf("  C non-commercial AIG income     %s\n", Money(e.C))
	t.printf("  D other non-commercial income   %s\n", Money(e.D))
	t.printf("  A+B %s vs C+D %s: %s\n", Money(e.A.Add(e.B)), Money(e.C.Add(e.D)), e.Verdict)

	s := r.Secondary
	t.printf("\nSecondary activities\n")
	t.printf("  Diverse income %s\n", Money(s.TotalDiverseIncome))
	t.printf("  Income test:  limit %s of income %s: %s\n", Money(s.Threshold30), Money(s.TotalEntityIncome), passFail(s.Pass30))
	t.printf("  Cost test:    limit %s of costs %s: %s\n", Money(s.Threshold66), Money(s.TotalEntityExpense), passFail(s.Pass66))
	t.printf("  Diverse activities are secondary when at least one test passes.\n")

	i := r.Ires
	t.printf("\nIRES\n")
	t.printf("  Regime %s, tax due %s\n", i.Regime, Money(i.Tax))
	t.printf("  Flat:     base %s x %s = %s\n", Money(i.Breakdown.ForfetarioBase), Rate(i.Breakdown.Coefficient), Money(i.Breakdown.ForfetarioTax))
	t.printf("  Ordinary: profit %s x %s = %s\n", Money(i.Breakdown.Profit), Rate(i.Breakdown.Rate), Money(i.Breakdown.OrdinarioTax))

	c := r.Cash
	t.printf("\nCash position\n")
	t.printf("  Bank available  %s\n", Money(c.BankAvailable))
	t.printf("  Cash available  %s\n", Money(c.CashAvailable))
	t.printf("  Operating result %s\n", Money(c.OperatingResult))

	u := r.Unassigned
	if u.Total > 0 {
		t.printf("\nWARNING: %d unassigned movements (AIG %d, diverse %d, fundraisers %d) are left out of every activity total:\n",
			u.Total, u.GeneralInterest, u.Diverse, u.Fundraiser)
		for _, id := range u.MovementIDs {
			t.printf("  %s\n", id)
		}
	}

	if len(issues) > 0 {
		t.printf("\nWARNING: %d problems in stored movements:\n", len(issues))
		for _, e := range issues {
			t.printf("  %s\n", e.Error())
		}
	}

	return t.err
}
