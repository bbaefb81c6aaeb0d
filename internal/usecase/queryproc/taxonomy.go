package queryproc

// Taxonomies are matched against normalized text, so every entry below is
// written in its normalized form (no hamza seats, taa marbuta folded to
// haa, alef maqsura folded to yaa).

// taxonomyEntry maps one category to the terms that signal it. Slices keep
// a fixed order so extraction output is deterministic.
type taxonomyEntry struct {
	category string
	terms    []string
}

// legalTaxonomy is the fixed legal-domain term taxonomy. A category name
// or any of its terms found in the query text is added to the legal-term
// set verbatim.
var legalTaxonomy = []taxonomyEntry{
	{category: "جنايي", terms: []string{"جريمه", "عقوبه", "سرقه", "قتل", "احتيال", "جنحه", "مخدرات"}},
	{category: "اسره", terms: []string{"طلاق", "زواج", "نفقه", "حضانه", "ميراث", "خلع", "عده"}},
	{category: "تجاري", terms: []string{"شركه", "عقد", "افلاس", "تجاره", "سند", "شيك", "علامه تجاريه"}},
	{category: "مدني", terms: []string{"تعويض", "ضرر", "ملكيه", "التزام", "مسووليه"}},
	{category: "عمالي", terms: []string{"اجر", "فصل تعسفي", "اجازه", "مكافاه نهايه الخدمه"}},
	{category: "اداري", terms: []string{"قرار اداري", "ترخيص", "مناقصه", "وظيفه عامه"}},
	{category: "دستوري", terms: []string{"دستور", "حريات", "انتخابات"}},
	{category: "عقاري", terms: []string{"عقار", "ايجار", "رهن", "تمليك"}},
}

// Context indicator categories.
const (
	ctxLitigation   = "litigation"
	ctxConsultation = "consultation"
	ctxResearch     = "research"
	ctxUpdate       = "update"
)

// contextTaxonomy is the fixed intent-indicator taxonomy.
var contextTaxonomy = []taxonomyEntry{
	{category: ctxLitigation, terms: []string{"قضيه", "دعوي", "محكمه", "حكم", "استيناف", "قاضي", "خصومه", "مرافعه"}},
	{category: ctxConsultation, terms: []string{"استشاره", "راي قانوني", "نصيحه", "توجيه"}},
	{category: ctxResearch, terms: []string{"بحث", "دراسه", "تحليل", "مقارنه", "مراجع"}},
	{category: ctxUpdate, terms: []string{"جديد", "تعديل", "مستجدات", "صدر حديثا"}},
}

// stopWords are dropped during keyword extraction (normalized forms).
var stopWords = map[string]struct{}{
	// Arabic
	"في": {}, "من": {}, "الي": {}, "علي": {}, "عن": {}, "مع": {},
	"هذا": {}, "هذه": {}, "ذلك": {}, "التي": {}, "الذي": {},
	"ما": {}, "هل": {}, "هو": {}, "هي": {}, "ان": {}, "او": {},
	"لا": {}, "لم": {}, "لن": {}, "قد": {}, "كان": {}, "كانت": {},
	"بين": {}, "بعد": {}, "قبل": {}, "عند": {}, "حتي": {}, "اذا": {},
	"كل": {}, "اي": {}, "ثم": {}, "كيف": {}, "لماذا": {}, "متي": {},
	// English
	"the": {}, "and": {}, "for": {}, "are": {}, "what": {}, "how": {},
	"with": {}, "that": {}, "this": {}, "about": {},
}

// jurisdictionMarkers bias source queries toward domain-relevant results.
// The generic marker is "قانون" (law); each jurisdiction refines it.
var jurisdictionMarkers = map[string]string{
	"local":         "قانون",
	"international": "قانون دولي",
	"academic":      "دراسات قانونيه",
}

// genericMarker is the domain marker checked before enhancement.
const genericMarker = "قانون"
