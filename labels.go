package neuroner

// Outside is the label of a token that belongs to no entity.
const Outside = "O"

// Scheme prefixes. A label is one of these followed by an entity type, or
// Outside.
const (
	BeginPrefix  = "B-"
	InsidePrefix = "I-"
	EndPrefix    = "E-"
	SinglePrefix = "S-"
)

// LabelConverter rewrites a sentence's label sequence from one tagging
// scheme to another. Implementations return a new slice of equal length.
type LabelConverter func(labels []string) []string

// Span is one entity instance covering tokens [Start, End).
type Span struct {
	Type  string
	Start int
	End   int
}

// labelPrefix returns the first two bytes of a label, or the whole label if
// it is shorter, so that `O` compares as its own prefix.
func labelPrefix(label string) string {
	if len(label) < 2 {
		return label
	}
	return label[:2]
}

// RemoveBIOFromLabelName
// Strips a `B-`, `I-`, `E-` or `S-` prefix, yielding the entity type.
// Labels without one of those prefixes are returned unchanged.
func RemoveBIOFromLabelName(label string) string {
	switch labelPrefix(label) {
	case BeginPrefix, InsidePrefix, EndPrefix, SinglePrefix:
		return label[2:]
	}
	return label
}

// endCurrentEntity rewrites the last token of an open entity of `length`
// tokens ending just before `idx` as `S-` or `E-`.
func endCurrentEntity(entityType string, length int, labels []string,
	idx int) {
	switch {
	case length == 0:
		return
	case length == 1:
		labels[idx-1] = SinglePrefix + entityType
	default:
		labels[idx-1] = EndPrefix + entityType
	}
}

// BIOToBIOES
// Converts a BIO label sequence to BIOES. An `I-` that does not continue an
// open entity of the same type is promoted to `B-` rather than rejected,
// so malformed BIO input is repaired instead of raising an error. The input
// slice is never modified.
func BIOToBIOES(labels []string) []string {
	newLabels := make([]string, len(labels))
	copy(newLabels, labels)

	previousType := Outside
	entityLength := 0
	for idx, label := range labels {
		labelType := RemoveBIOFromLabelName(label)
		prefix := labelPrefix(label)
		if entityLength > 0 && (prefix == BeginPrefix || prefix == Outside ||
			(prefix == InsidePrefix && previousType != labelType)) {
			endCurrentEntity(previousType, entityLength, newLabels, idx)
			entityLength = 0
		}
		switch prefix {
		case BeginPrefix:
			entityLength = 1
		case InsidePrefix:
			if entityLength == 0 {
				newLabels[idx] = BeginPrefix + labelType
			}
			entityLength++
		}
		previousType = labelType
	}
	endCurrentEntity(previousType, entityLength, newLabels, len(labels))
	return newLabels
}

// BIOESToBIO
// Converts a BIOES label sequence to BIO. `S-` becomes `B-`; `I-` and `E-`
// become `I-` when they continue the previous token's type and `B-`
// otherwise. The input slice is never modified.
func BIOESToBIO(labels []string) []string {
	newLabels := make([]string, len(labels))
	copy(newLabels, labels)

	previousType := Outside
	for idx, label := range labels {
		labelType := RemoveBIOFromLabelName(label)
		switch labelPrefix(label) {
		case InsidePrefix, EndPrefix:
			if previousType == labelType {
				newLabels[idx] = InsidePrefix + labelType
			} else {
				newLabels[idx] = BeginPrefix + labelType
			}
		case SinglePrefix:
			newLabels[idx] = BeginPrefix + labelType
		}
		previousType = labelType
	}
	return newLabels
}

// BIOSpans
// Extracts the entity spans of a BIO sequence, with the same repair rules
// as BIOToBIOES.
func BIOSpans(labels []string) []Span {
	spans := make([]Span, 0)
	open := -1
	for idx, label := range labels {
		prefix := labelPrefix(label)
		labelType := RemoveBIOFromLabelName(label)
		continues := prefix == InsidePrefix && open >= 0 &&
			spans[open].Type == labelType
		if open >= 0 && !continues {
			spans[open].End = idx
			open = -1
		}
		if prefix == BeginPrefix || (prefix == InsidePrefix && !continues) {
			spans = append(spans, Span{Type: labelType, Start: idx})
			open = len(spans) - 1
		}
	}
	if open >= 0 {
		spans[open].End = len(labels)
	}
	return spans
}

// BIOESSpans
// Extracts the entity spans of a well-formed BIOES sequence. Malformed
// continuations are read the way BIOESToBIO reads them.
func BIOESSpans(labels []string) []Span {
	return BIOSpans(BIOESToBIO(labels))
}

// EntityTypes returns the entity types named by a label sequence, in
// first-seen order.
func EntityTypes(labels []string) []string {
	seen := make(map[string]bool)
	types := make([]string, 0)
	for _, label := range labels {
		if label == Outside {
			continue
		}
		labelType := RemoveBIOFromLabelName(label)
		if !seen[labelType] {
			seen[labelType] = true
			types = append(types, labelType)
		}
	}
	return types
}
