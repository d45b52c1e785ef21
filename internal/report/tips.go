package report

import "github.com/abhisek/levelcheck/internal/itembank"

var tips = map[itembank.Topic]string{
	itembank.TopicNumberOps:     "Practice multi-digit addition, subtraction and place value with quick daily drills; say each digit's value aloud.",
	itembank.TopicFractions:     "Use fraction strips or number lines to compare and add fractions; connect tenths and hundredths to decimals and percents.",
	itembank.TopicAlgebra:       "Work missing-number and one-step equations, then write the inverse operation that undoes each step.",
	itembank.TopicGeometry:      "Draw and label shapes; compute area and perimeter of rectangles and check angle sums in triangles.",
	itembank.TopicMeasurement:   "Convert between units with a conversion chart and solve short elapsed-time and average problems.",
	itembank.TopicLiterary:      "Read a short story each day and retell it: who, what happened, and what lesson the character learned.",
	itembank.TopicInformational: "Read nonfiction articles and underline the main idea and two supporting details in each paragraph.",
	itembank.TopicLanguage:      "Review commonly confused words and punctuation rules; edit one short paragraph a day for errors.",
}

// Tip returns the remediation tip for a topic.
func Tip(t itembank.Topic) string {
	if tip, ok := tips[t]; ok {
		return tip
	}
	return "Review this topic with targeted practice."
}
