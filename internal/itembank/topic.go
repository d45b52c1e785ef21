package itembank

import "fmt"

// Subject is one of the two diagnostic phases.
type Subject string

const (
	SubjectMath    Subject = "math"
	SubjectEnglish Subject = "english"
)

// Subjects returns the subjects in administration order.
func Subjects() []Subject {
	return []Subject{SubjectMath, SubjectEnglish}
}

// DisplayName returns a human-readable subject name.
func (s Subject) DisplayName() string {
	switch s {
	case SubjectMath:
		return "Math"
	case SubjectEnglish:
		return "English"
	default:
		return string(s)
	}
}

// ParseSubject parses a subject name as used on the command line and in
// bank files.
func ParseSubject(s string) (Subject, error) {
	switch s {
	case "math":
		return SubjectMath, nil
	case "english", "ela":
		return SubjectEnglish, nil
	}
	return "", fmt.Errorf("unknown subject %q", s)
}

// Topic is a math strand or an English domain.
type Topic string

const (
	TopicNumberOps   Topic = "number-operations"
	TopicFractions   Topic = "fractions"
	TopicAlgebra     Topic = "algebra"
	TopicGeometry    Topic = "geometry"
	TopicMeasurement Topic = "measurement-data"

	TopicLiterary      Topic = "literary-reading"
	TopicInformational Topic = "informational-reading"
	TopicLanguage      Topic = "language-conventions"
)

// MathStrands returns the math strands in display order.
func MathStrands() []Topic {
	return []Topic{
		TopicNumberOps,
		TopicFractions,
		TopicAlgebra,
		TopicGeometry,
		TopicMeasurement,
	}
}

// EnglishDomains returns the English domains in display order.
func EnglishDomains() []Topic {
	return []Topic{
		TopicLiterary,
		TopicInformational,
		TopicLanguage,
	}
}

// TopicsFor returns the topics of a subject in display order.
func TopicsFor(s Subject) []Topic {
	switch s {
	case SubjectMath:
		return MathStrands()
	case SubjectEnglish:
		return EnglishDomains()
	}
	return nil
}

// Subject returns the subject a topic belongs to, or "" if unknown.
func (t Topic) Subject() Subject {
	switch t {
	case TopicNumberOps, TopicFractions, TopicAlgebra, TopicGeometry, TopicMeasurement:
		return SubjectMath
	case TopicLiterary, TopicInformational, TopicLanguage:
		return SubjectEnglish
	}
	return ""
}

// Valid reports whether t is one of the known topics.
func (t Topic) Valid() bool {
	return t.Subject() != ""
}

// Label returns the report label for a topic.
func (t Topic) Label() string {
	switch t {
	case TopicNumberOps:
		return "Number & Operations"
	case TopicFractions:
		return "Fractions & Decimals"
	case TopicAlgebra:
		return "Algebraic Thinking"
	case TopicGeometry:
		return "Geometry"
	case TopicMeasurement:
		return "Measurement & Data"
	case TopicLiterary:
		return "Reading: Literature"
	case TopicInformational:
		return "Reading: Informational Text"
	case TopicLanguage:
		return "Language Conventions"
	default:
		return string(t)
	}
}

// Standard returns the standards family a topic reports against.
func (t Topic) Standard() string {
	switch t {
	case TopicNumberOps:
		return "NY-3.OA.* / NY-3.NBT.*"
	case TopicFractions:
		return "NY-3-5.NF.* / NY-6.RP.*"
	case TopicAlgebra:
		return "NY-6-7.EE.* / NY-8.F.*"
	case TopicGeometry:
		return "NY-4.MD.* / NY-7-8.G.*"
	case TopicMeasurement:
		return "NY-4-5.MD.* / NY-6.SP.*"
	case TopicLiterary:
		return "NY-ELA.RL.*"
	case TopicInformational:
		return "NY-ELA.RI.*"
	case TopicLanguage:
		return "NY-ELA.L.*"
	default:
		return "-"
	}
}
