// Package catalog holds the immutable questionnaire-to-category mapping and
// the career candidates offered per category. The catalog is loaded once at
// startup and injected, so tests can score against alternate catalogs.
package catalog

// Career is a candidate recommendation within a category.
type Career struct {
	Name            string
	BaseDescription string
	Keywords        []string
}

// Catalog binds answer positions to categories and categories to careers.
type Catalog struct {
	// Categories in fixed order; this order is the tie-break when
	// percentages are equal.
	Categories []string

	// PositionCategory maps the 1-based ordinal position of an answer
	// within an attempt to its category.
	PositionCategory map[int]string

	// Careers per category, in presentation order.
	Careers map[string][]Career

	QuestionsPerCategory int
	MaxLikert            int
}

// CategoryAt returns the category for a 1-based answer position, or "" when
// the position is outside the mapped range.
func (c *Catalog) CategoryAt(position int) string {
	return c.PositionCategory[position]
}

// CareersFor returns the ordered career candidates for a category.
func (c *Catalog) CareersFor(category string) []Career {
	return c.Careers[category]
}

// MaxScore is the highest raw sum a category can reach.
func (c *Catalog) MaxScore() float64 {
	return float64(c.QuestionsPerCategory * c.MaxLikert)
}

// Default returns the reference catalog: 20 questions, 4 per category,
// across 5 categories on a 1-5 Likert scale.
func Default() *Catalog {
	categories := []string{
		"Sciences & Technology",
		"Social Sciences",
		"Arts",
		"Business",
		"Health",
	}

	positions := make(map[int]string, 20)
	for i, category := range categories {
		for q := 1; q <= 4; q++ {
			positions[i*4+q] = category
		}
	}

	return &Catalog{
		Categories:           categories,
		PositionCategory:     positions,
		QuestionsPerCategory: 4,
		MaxLikert:            5,
		Careers: map[string][]Career{
			"Sciences & Technology": {
				{
					Name:            "Software Engineering",
					BaseDescription: "Design, development and maintenance of software systems",
					Keywords:        []string{"programming", "algorithms", "web development", "apps"},
				},
				{
					Name:            "Systems Engineering",
					BaseDescription: "Integration of technology components into business solutions",
					Keywords:        []string{"systems", "networks", "infrastructure"},
				},
				{
					Name:            "Computer Science",
					BaseDescription: "Research and development of new technologies",
					Keywords:        []string{"AI", "machine learning", "algorithms"},
				},
			},
			"Social Sciences": {
				{
					Name:            "Psychology",
					BaseDescription: "Study of human behavior and mental processes",
					Keywords:        []string{"behavior", "mind", "therapy"},
				},
				{
					Name:            "Social Work",
					BaseDescription: "Social intervention to improve community well-being",
					Keywords:        []string{"community", "support", "society"},
				},
			},
			"Arts": {
				{
					Name:            "Graphic Design",
					BaseDescription: "Visual communication through imagery and typography",
					Keywords:        []string{"design", "visual", "creativity"},
				},
				{
					Name:            "Architecture",
					BaseDescription: "Design of living spaces and constructions",
					Keywords:        []string{"buildings", "spaces", "design"},
				},
			},
			"Business": {
				{
					Name:            "Business Administration",
					BaseDescription: "Management and direction of organizations",
					Keywords:        []string{"management", "companies", "leadership"},
				},
				{
					Name:            "Marketing",
					BaseDescription: "Market strategy and commercial communication",
					Keywords:        []string{"sales", "advertising", "branding"},
				},
			},
			"Health": {
				{
					Name:            "Medicine",
					BaseDescription: "Diagnosis, treatment and prevention of disease",
					Keywords:        []string{"health", "patients", "diagnosis"},
				},
				{
					Name:            "Nursing",
					BaseDescription: "Comprehensive patient care",
					Keywords:        []string{"care", "patients", "hospital"},
				},
			},
		},
	}
}
