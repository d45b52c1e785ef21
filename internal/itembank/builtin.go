package itembank

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"strconv"
	"strings"
)

// ItemsPerGenerator is how many instances each math generator contributes
// per grade in the built-in bank.
const ItemsPerGenerator = 8

// DefaultSeed fixes the built-in bank's content. Changing it changes every
// generated item id, which resets rotation history.
const DefaultSeed uint64 = 20250901

// question is the raw output of a math generator before choices are built.
type question struct {
	stem    string
	correct string
	wrongs  []string
}

// generator produces math questions for one strand, tier and skill.
type generator struct {
	topic Topic
	tier  Tier
	skill string
	gen   func(r *rand.Rand, grade int) question
}

// NewBuiltin returns the built-in bank: generated math items for every grade
// plus the static English passages and language items. The same seed always
// yields the same items and ids.
func NewBuiltin(seed uint64) *MemoryBank {
	var items []Item
	for _, g := range mathGenerators {
		for grade := MinGrade; grade <= MaxGrade; grade++ {
			items = append(items, instantiate(g, grade, seed)...)
		}
	}
	items = append(items, languageItems...)
	return NewMemoryBank(items, mixedPassages())
}

func instantiate(g generator, grade int, seed uint64) []Item {
	r := rand.New(rand.NewPCG(seed, streamID(g.skill, g.tier, grade)))

	var out []Item
	stems := make(map[string]bool, ItemsPerGenerator)
	for attempt := 0; len(out) < ItemsPerGenerator && attempt < ItemsPerGenerator*6; attempt++ {
		q := g.gen(r, grade)
		if stems[q.stem] {
			continue
		}
		stems[q.stem] = true
		out = append(out, Item{
			ID:       fmt.Sprintf("m-%s-%s-g%d-%02d", g.skill, g.tier, grade, len(out)+1),
			GradeMin: grade,
			GradeMax: grade,
			Topic:    g.topic,
			Tier:     g.tier,
			Skill:    g.skill,
			Stem:     q.stem,
			Choices:  choiceSet(r, q.correct, q.wrongs),
			Correct:  q.correct,
		})
	}
	return out
}

func streamID(skill string, tier Tier, grade int) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s/%s/%d", skill, tier, grade)
	return h.Sum64()
}

// choiceSet builds four distinct shuffled options containing correct.
// Missing or duplicate distractors are replaced by nearby values.
func choiceSet(r *rand.Rand, correct string, wrongs []string) []string {
	opts := []string{correct}
	seen := map[string]bool{correct: true}
	add := func(s string) {
		if s == "" || seen[s] || len(opts) == ChoiceCount {
			return
		}
		seen[s] = true
		opts = append(opts, s)
	}
	for _, w := range wrongs {
		add(w)
	}
	for k := 1; len(opts) < ChoiceCount && k < 50; k++ {
		add(nudge(correct, k))
		add(nudge(correct, -k))
	}
	r.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	return opts
}

// nudge offsets a numeric answer by k units, keeping its format
// (integer, "$n", "p/q", "H:MM", or two-decimal).
func nudge(s string, k int) string {
	switch {
	case strings.HasPrefix(s, "$"):
		if n, err := strconv.Atoi(s[1:]); err == nil && n+k > 0 {
			return "$" + strconv.Itoa(n+k)
		}
	case strings.Contains(s, "/"):
		parts := strings.SplitN(s, "/", 2)
		p, err1 := strconv.Atoi(parts[0])
		q, err2 := strconv.Atoi(parts[1])
		if err1 == nil && err2 == nil && p+k > 0 {
			return fmt.Sprintf("%d/%d", p+k, q)
		}
	case strings.Contains(s, ":"):
		if m, ok := parseClock(s); ok {
			return formatClock(m + 5*k)
		}
	case strings.Contains(s, "."):
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			h := int(f*100+0.5) + k
			if h > 0 {
				return hundredths(h)
			}
		}
	default:
		if n, err := strconv.Atoi(s); err == nil && (n < 0 || n+k >= 0) {
			return strconv.Itoa(n + k)
		}
	}
	return ""
}

func itoa(n int) string { return strconv.Itoa(n) }

func within(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

func pick[T any](r *rand.Rand, xs []T) T {
	return xs[r.IntN(len(xs))]
}

func hundredths(h int) string {
	return fmt.Sprintf("%d.%02d", h/100, h%100)
}

func parseClock(s string) (int, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, false
	}
	return h*60 + m, true
}

// formatClock renders minutes after midnight on a 12-hour clock.
func formatClock(mins int) string {
	mins = ((mins % 720) + 720) % 720
	h := mins / 60
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d", h, mins%60)
}

// magnitude bounds operand size for whole-number work at a grade.
func magnitude(grade int) int {
	switch {
	case grade <= 2:
		return 20
	case grade == 3:
		return 100
	case grade == 4:
		return 500
	case grade == 5:
		return 1000
	default:
		return 5000
	}
}

var mathGenerators = []generator{
	{TopicNumberOps, TierCore, "add-subtract", genAddSubtract},
	{TopicNumberOps, TierOn, "place-value", genPlaceValue},
	{TopicNumberOps, TierStretch, "multiply-divide", genMultiplyDivide},
	{TopicFractions, TierCore, "equivalent-fractions", genEquivalentFractions},
	{TopicFractions, TierOn, "add-fractions", genAddFractions},
	{TopicFractions, TierStretch, "decimals-percent", genDecimalsPercent},
	{TopicAlgebra, TierCore, "missing-number", genMissingNumber},
	{TopicAlgebra, TierOn, "one-step-equation", genOneStep},
	{TopicAlgebra, TierStretch, "two-step-equation", genTwoStep},
	{TopicGeometry, TierCore, "shapes", genShapes},
	{TopicGeometry, TierOn, "area-perimeter", genAreaPerimeter},
	{TopicGeometry, TierStretch, "angles-triangles", genAngles},
	{TopicMeasurement, TierCore, "unit-conversion", genUnitConversion},
	{TopicMeasurement, TierOn, "time-and-mean", genTimeAndMean},
	{TopicMeasurement, TierStretch, "unit-rate", genUnitRate},
}

func genAddSubtract(r *rand.Rand, grade int) question {
	hi := magnitude(grade)
	a, b := within(r, 1, hi), within(r, 1, hi)
	if r.IntN(2) == 0 {
		c := a + b
		return question{
			stem:    fmt.Sprintf("What is %d + %d?", a, b),
			correct: itoa(c),
			wrongs:  []string{itoa(c + 1), itoa(c - 1), itoa(c + 10)},
		}
	}
	if a < b {
		a, b = b, a
	}
	c := a - b
	return question{
		stem:    fmt.Sprintf("What is %d - %d?", a, b),
		correct: itoa(c),
		wrongs:  []string{itoa(c + 1), itoa(c + 10), itoa(a + b)},
	}
}

func genPlaceValue(r *rand.Rand, grade int) question {
	digits := min(grade+1, 7)
	num := within(r, pow10(digits-1), pow10(digits)-1)

	switch r.IntN(3) {
	case 0:
		places := []string{"ones", "tens", "hundreds", "thousands", "ten-thousands", "hundred-thousands", "millions"}
		pos := within(r, 1, digits-1)
		digit := (num / pow10(pos)) % 10
		if digit == 0 {
			digit = within(r, 1, 9)
			num += digit * pow10(pos)
			num = min(num, pow10(digits)-1)
			digit = (num / pow10(pos)) % 10
		}
		c := digit * pow10(pos)
		return question{
			stem:    fmt.Sprintf("What is the value of the digit in the %s place of %d?", places[pos], num),
			correct: itoa(c),
			wrongs:  []string{itoa(digit), itoa(pow10(pos)), itoa(c * 10)},
		}
	case 1:
		c := roundTo(num, 10)
		return question{
			stem:    fmt.Sprintf("Round %d to the nearest ten.", num),
			correct: itoa(c),
			wrongs:  []string{itoa(c + 10), itoa(c - 10), itoa(roundTo(num, 100))},
		}
	default:
		c := roundTo(num, 100)
		return question{
			stem:    fmt.Sprintf("Round %d to the nearest hundred.", num),
			correct: itoa(c),
			wrongs:  []string{itoa(c + 100), itoa(c - 100), itoa(roundTo(num, 10))},
		}
	}
}

func genMultiplyDivide(r *rand.Rand, grade int) question {
	var a, b int
	switch {
	case grade <= 3:
		a, b = within(r, 2, 10), within(r, 2, 10)
	case grade <= 5:
		a, b = within(r, 12, 99), within(r, 3, 9)
	default:
		a, b = within(r, 12, 99), within(r, 11, 40)
	}
	p := a * b
	if r.IntN(2) == 0 {
		return question{
			stem:    fmt.Sprintf("What is %d x %d?", a, b),
			correct: itoa(p),
			wrongs:  []string{itoa(a * (b + 1)), itoa(a * (b - 1)), itoa(a + b)},
		}
	}
	return question{
		stem:    fmt.Sprintf("What is %d / %d?", p, b),
		correct: itoa(a),
		wrongs:  []string{itoa(a + 1), itoa(a - 1), itoa(b)},
	}
}

func genEquivalentFractions(r *rand.Rand, grade int) question {
	base := pick(r, [][2]int{{1, 2}, {1, 3}, {2, 3}, {3, 4}, {2, 5}, {3, 8}})
	k := within(r, 2, min(grade+1, 6))
	n, d := base[0], base[1]
	return question{
		stem:    fmt.Sprintf("Which fraction is equivalent to %d/%d?", n, d),
		correct: fmt.Sprintf("%d/%d", n*k, d*k),
		wrongs: []string{
			fmt.Sprintf("%d/%d", n, d+1),
			fmt.Sprintf("%d/%d", n+1, d),
			fmt.Sprintf("%d/%d", n*k, d*k+1),
		},
	}
}

func genAddFractions(r *rand.Rand, grade int) question {
	den := pick(r, []int{4, 5, 6, 8, 10, 12})
	a1, a2 := within(r, 1, den-1), within(r, 1, den-1)
	if grade <= 4 || r.IntN(2) == 0 {
		return question{
			stem:    fmt.Sprintf("Compute: %d/%d + %d/%d", a1, den, a2, den),
			correct: fmt.Sprintf("%d/%d", a1+a2, den),
			wrongs: []string{
				fmt.Sprintf("%d/%d", a1+a2, den*2),
				fmt.Sprintf("%d/%d", a1, den),
				fmt.Sprintf("%d/%d", a1+a2+1, den),
			},
		}
	}
	if a1 < a2 {
		a1, a2 = a2, a1
	}
	if a1 == a2 {
		a1 = min(a1+1, den)
	}
	return question{
		stem:    fmt.Sprintf("Compute: %d/%d - %d/%d", a1, den, a2, den),
		correct: fmt.Sprintf("%d/%d", a1-a2, den),
		wrongs: []string{
			fmt.Sprintf("%d/%d", a1-a2, den*2),
			fmt.Sprintf("%d/%d", a1+a2, den),
			fmt.Sprintf("%d/%d", a1-a2+1, den),
		},
	}
}

func genDecimalsPercent(r *rand.Rand, grade int) question {
	switch {
	case grade <= 4:
		den := pick(r, []int{2, 3, 4, 5})
		total := den * within(r, 2, 4+grade)
		c := total / den
		return question{
			stem:    fmt.Sprintf("What is 1/%d of %d?", den, total),
			correct: itoa(c),
			wrongs:  []string{itoa(c + 1), itoa(total - c), itoa(c * 2)},
		}
	case grade == 5:
		a, b := within(r, 10, 99), within(r, 10, 99)
		s := a + b
		return question{
			stem:    fmt.Sprintf("What is %s + %s?", hundredths(a), hundredths(b)),
			correct: hundredths(s),
			wrongs:  []string{hundredths(s + 10), hundredths(s - 1), hundredths(s + 1)},
		}
	default:
		pct := pick(r, []int{10, 20, 25, 40, 75})
		base := 20 * within(r, 1, 10)
		c := pct * base / 100
		return question{
			stem:    fmt.Sprintf("What is %d%% of %d?", pct, base),
			correct: itoa(c),
			wrongs:  []string{itoa(c + 5), itoa(c * 2), itoa(base - c)},
		}
	}
}

func genMissingNumber(r *rand.Rand, grade int) question {
	hi := max(10, magnitude(grade)/10)
	a, b := within(r, 2, hi), within(r, 2, hi)
	total := a + b
	return question{
		stem:    fmt.Sprintf("What number makes this true? __ + %d = %d", b, total),
		correct: itoa(a),
		wrongs:  []string{itoa(a + 1), itoa(total + b), itoa(a - 1)},
	}
}

func genOneStep(r *rand.Rand, grade int) question {
	x, b := within(r, 2, 6+grade), within(r, 2, 9)
	p := x * b
	if grade <= 4 {
		return question{
			stem:    fmt.Sprintf("What number makes this true? __ x %d = %d", b, p),
			correct: itoa(x),
			wrongs:  []string{itoa(p - b), itoa(x + 1), itoa(p + b)},
		}
	}
	return question{
		stem:    fmt.Sprintf("Solve for x: %dx = %d", b, p),
		correct: itoa(x),
		wrongs:  []string{itoa(p - b), itoa(p + b), itoa(x + 1)},
	}
}

func genTwoStep(r *rand.Rand, grade int) question {
	switch {
	case grade <= 4:
		start, step := within(r, 1, 10), within(r, 2, 3+grade)
		seq := make([]string, 4)
		for i := range seq {
			seq[i] = itoa(start + i*step)
		}
		c := start + 4*step
		return question{
			stem:    fmt.Sprintf("What comes next? %s, __", strings.Join(seq, ", ")),
			correct: itoa(c),
			wrongs:  []string{itoa(c + 1), itoa(c - step + 1), itoa(c + step)},
		}
	case grade <= 7:
		a, x, b := within(r, 2, 9), within(r, 2, 12), within(r, 1, 20)
		c := a*x + b
		return question{
			stem:    fmt.Sprintf("Solve for x: %dx + %d = %d", a, b, c),
			correct: itoa(x),
			wrongs:  []string{itoa((c + b) / a), itoa(x + 1), itoa(c - b)},
		}
	default:
		m, b, x := within(r, 2, 9), within(r, -10, 10), within(r, 1, 9)
		y := m*x + b
		return question{
			stem:    fmt.Sprintf("For the function y = %dx %s, what is y when x = %d?", m, signed(b), x),
			correct: itoa(y),
			wrongs:  []string{itoa(m*x - b), itoa(m + x + b), itoa(y + m)},
		}
	}
}

func signed(b int) string {
	if b < 0 {
		return fmt.Sprintf("- %d", -b)
	}
	return fmt.Sprintf("+ %d", b)
}

func genShapes(r *rand.Rand, grade int) question {
	if grade <= 3 {
		shapes := []struct {
			name  string
			sides int
		}{{"triangle", 3}, {"square", 4}, {"pentagon", 5}, {"hexagon", 6}, {"octagon", 8}}
		s := pick(r, shapes)
		return question{
			stem:    fmt.Sprintf("How many sides does a %s have?", s.name),
			correct: itoa(s.sides),
			wrongs:  []string{itoa(s.sides + 1), itoa(s.sides - 1), itoa(s.sides + 2)},
		}
	}
	side := within(r, 3, 4+grade*2)
	return question{
		stem:    fmt.Sprintf("What is the perimeter of a square with sides of %d cm?", side),
		correct: itoa(4 * side),
		wrongs:  []string{itoa(side * side), itoa(2 * side), itoa(side + 4)},
	}
}

func genAreaPerimeter(r *rand.Rand, grade int) question {
	w, h := within(r, 3, 6+grade), within(r, 3, 6+grade)
	if r.IntN(2) == 0 {
		a := w * h
		return question{
			stem:    fmt.Sprintf("What is the area of a rectangle %d by %d?", w, h),
			correct: itoa(a),
			wrongs:  []string{itoa(w + h), itoa(a + 2), itoa(2 * (w + h))},
		}
	}
	p := 2 * (w + h)
	return question{
		stem:    fmt.Sprintf("What is the perimeter of a rectangle %d by %d?", w, h),
		correct: itoa(p),
		wrongs:  []string{itoa(w + h), itoa(p + 2), itoa(w * h)},
	}
}

func genAngles(r *rand.Rand, grade int) question {
	switch {
	case grade <= 4:
		w, h := within(r, 2, 5+grade), within(r, 2, 5+grade)
		return question{
			stem:    fmt.Sprintf("A rectangle is %d squares wide and %d squares tall. How many unit squares cover it?", w, h),
			correct: itoa(w * h),
			wrongs:  []string{itoa(w + h), itoa(2 * (w + h)), itoa(w*h + w)},
		}
	case grade <= 6:
		a := 5 * within(r, 4, 32)
		c := 180 - a
		return question{
			stem:    fmt.Sprintf("Two angles are supplementary. One measures %d degrees. What does the other measure?", a),
			correct: itoa(c),
			wrongs:  []string{itoa(360 - a), itoa(c + 10), itoa(a)},
		}
	case grade == 7:
		a, b := 5*within(r, 6, 14), 5*within(r, 6, 14)
		c := 180 - a - b
		return question{
			stem:    fmt.Sprintf("A triangle has angles of %d and %d degrees. What is the third angle?", a, b),
			correct: itoa(c),
			wrongs:  []string{itoa(360 - a - b), itoa(c + 10), itoa(a + b)},
		}
	default:
		t := pick(r, [][3]int{{3, 4, 5}, {5, 12, 13}, {8, 15, 17}, {6, 8, 10}, {7, 24, 25}, {9, 12, 15}, {12, 16, 20}})
		return question{
			stem:    fmt.Sprintf("A right triangle has legs %d and %d. How long is the hypotenuse?", t[0], t[1]),
			correct: itoa(t[2]),
			wrongs:  []string{itoa(t[0] + t[1]), itoa(t[2] + 1), itoa(t[2] - 2)},
		}
	}
}

func genUnitConversion(r *rand.Rand, grade int) question {
	switch {
	case grade <= 3:
		h := within(r, 1, 5)
		return question{
			stem:    fmt.Sprintf("How many minutes are in %d hours?", h),
			correct: itoa(60 * h),
			wrongs:  []string{itoa(100 * h), itoa(60*h + 60), itoa(24 * h)},
		}
	case grade <= 5:
		m := within(r, 2, 9)
		return question{
			stem:    fmt.Sprintf("How many centimeters are in %d meters?", m),
			correct: itoa(100 * m),
			wrongs:  []string{itoa(10 * m), itoa(1000 * m), itoa(100*m + 10)},
		}
	default:
		k := within(r, 2, 12)
		h := within(r, 1, 9)
		return question{
			stem:    fmt.Sprintf("How many grams are in %d.%d kilograms?", k, h),
			correct: itoa(1000*k + 100*h),
			wrongs:  []string{itoa(100*k + 10*h), itoa(1000*k + h), itoa(10000*k + 1000*h)},
		}
	}
}

func genTimeAndMean(r *rand.Rand, grade int) question {
	if grade <= 4 {
		start := 60*within(r, 1, 10) + 15*within(r, 0, 3)
		dur := 15 * within(r, 2, 3+grade)
		end := start + dur
		return question{
			stem:    fmt.Sprintf("A show starts at %s and lasts %d minutes. What time does it end?", formatClock(start), dur),
			correct: formatClock(end),
			wrongs:  []string{formatClock(end + 15), formatClock(end - 15), formatClock(end + 60)},
		}
	}
	mean := within(r, 5, 10*grade)
	n := within(r, 3, 5)
	vals := make([]int, n)
	sum := 0
	for i := 0; i < n-1; i++ {
		vals[i] = mean + within(r, -4, 4)
		sum += vals[i]
	}
	vals[n-1] = mean*n - sum
	if vals[n-1] < 0 {
		vals[n-1] = mean
		for i := 0; i < n-1; i++ {
			vals[i] = mean
		}
	}
	strs := make([]string, n)
	for i, v := range vals {
		strs[i] = itoa(v)
	}
	return question{
		stem:    fmt.Sprintf("What is the mean of %s?", strings.Join(strs, ", ")),
		correct: itoa(mean),
		wrongs:  []string{itoa(mean + 1), itoa(mean * n), itoa(mean - 2)},
	}
}

func genUnitRate(r *rand.Rand, grade int) question {
	n := within(r, 3, 9)
	p := within(r, 2, 3*grade)
	if grade <= 3 {
		return question{
			stem:    fmt.Sprintf("Each bag holds %d apples. How many apples are in %d bags?", p, n),
			correct: itoa(n * p),
			wrongs:  []string{itoa(n + p), itoa(n*p + p), itoa(n*p - n)},
		}
	}
	t := n * p
	return question{
		stem:    fmt.Sprintf("%d notebooks cost $%d. How much does one notebook cost?", n, t),
		correct: fmt.Sprintf("$%d", p),
		wrongs:  []string{fmt.Sprintf("$%d", p+1), fmt.Sprintf("$%d", t-n), fmt.Sprintf("$%d", n)},
	}
}

func pow10(n int) int {
	v := 1
	for range n {
		v *= 10
	}
	return v
}

func roundTo(n, unit int) int {
	return (n + unit/2) / unit * unit
}
