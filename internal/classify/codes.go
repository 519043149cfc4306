package classify

import "github.com/etsledger/etsledger/internal/model"

// Description codes that change how income is counted.
const (
	CodeMemberMutual      = 1 // AIG income: from members for mutual activities
	CodeMemberServices    = 2 // AIG income: services to members and founders
	CodeDiverseSponsoring = 6 // diverse income: sponsorships
)

// CodeEntry is one line of the description-code catalog.
type CodeEntry struct {
	Code  int
	Label string
}

type catalogKey struct {
	category  model.Category
	direction model.Direction
}

var catalog = map[catalogKey][]CodeEntry{
	{model.CategoryGeneralInterest, model.DirectionIncome}: {
		{1, "Entrate dagli associati per attività mutuali"},
		{2, "Prestazioni e cessioni a iscritti, associati e fondatori"},
		{3, "Contributi da soggetti privati"},
		{4, "Prestazioni e cessioni a terzi"},
		{5, "Contributi da enti pubblici"},
		{6, "Entrate da contratti con enti pubblici"},
		{7, "Altri ricavi, rendite e proventi"},
		{8, "Rimanenze finali"},
	},
	{model.CategoryDiverse, model.DirectionIncome}: {
		{1, "Prestazioni ad associati"},
		{2, "Contributi privati"},
		{3, "Prestazioni a terzi"},
		{4, "Contributi pubblici"},
		{5, "Contratti pubblici"},
		{6, "Sponsorizzazioni"},
		{7, "Altre entrate"},
	},
	{model.CategoryGeneralInterest, model.DirectionExpense}: {
		{1, "Materie prime"},
		{2, "Servizi"},
		{3, "Godimento beni di terzi"},
		{4, "Personale"},
		{5, "Ammortamenti"},
		{6, "Accantonamenti"},
		{7, "Oneri e uscite diverse"},
		{8, "Rimanenze iniziali"},
		{9, "Costi su rapporti bancari"},
		{10, "Costi su prestiti"},
	},
	{model.CategoryDiverse, model.DirectionExpense}: {
		{1, "Materie prime"},
		{2, "Servizi"},
		{3, "Godimento beni di terzi"},
		{4, "Personale"},
		{5, "Uscite diverse"},
	},
}

// Codes returns the catalog for a category and direction, or nil when the
// category takes no description code.
func Codes(c model.Category, d model.Direction) []CodeEntry {
	return catalog[catalogKey{c, d}]
}

// AcceptsCodes reports whether movements of c may carry a description code.
func AcceptsCodes(c model.Category) bool {
	return c == model.CategoryGeneralInterest || c == model.CategoryDiverse
}

// CodeLabel returns the label of a code, or "" if the code is not in the catalog.
func CodeLabel(c model.Category, d model.Direction, code int) string {
	for _, e := range Codes(c, d) {
		if e.Code == code {
			return e.Label
		}
	}
	return ""
}

// IsMemberIncome reports AIG income that an APS excludes from relevant income.
func IsMemberIncome(m model.Movement) bool {
	return m.Category == model.CategoryGeneralInterest &&
		m.Direction == model.DirectionIncome &&
		(m.Code == CodeMemberMutual || m.Code == CodeMemberServices)
}

// IsSponsorship reports diverse-activity sponsorship income.
func IsSponsorship(m model.Movement) bool {
	return m.Category == model.CategoryDiverse &&
		m.Direction == model.DirectionIncome &&
		m.Code == CodeDiverseSponsoring
}
