package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"wanderwise/internal/models/response_models"
	"wanderwise/pkg/logger"
	"wanderwise/pkg/utils"
)

const (
	rawPrefixLimit                = 500
	DefaultImageLookupConcurrency = 6
)

var requiredFields = []string{
	"name",
	"description",
	"matchReason",
	"detailedReasoning",
	"suitability",
	"nearestAirports",
}

// Candidate is a generated destination that passed schema validation.
type Candidate struct {
	Name              string
	Description       string
	MatchReason       string
	DetailedReasoning string
	Suitability       string
	NearestAirports   string
	MustDoActivities  []string
}

// ParseCandidates runs the parse and validation stages over raw generator text.
// It stops at the first failing stage and reports it as a *utils.GenerationError.
func ParseCandidates(raw string) ([]Candidate, error) {
	text := stripCodeFence(strings.TrimSpace(raw))
	if text == "" {
		return nil, utils.NewGenerationError(utils.ErrEmptyResponse, "", nil)
	}

	var parsed json.RawMessage
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, utils.NewGenerationError(utils.ErrMalformedJSON, "raw: "+rawPrefix(text), err)
	}

	elements, err := unwrapCandidates(parsed)
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return nil, utils.NewGenerationError(utils.ErrEmptyResultSet, "", nil)
	}

	candidates := make([]Candidate, 0, len(elements))
	for i, el := range elements {
		c, err := validateCandidate(el)
		if err != nil {
			return nil, utils.NewGenerationError(utils.ErrSchemaViolation, fmt.Sprintf("candidate %d: %s", i, err), nil)
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// unwrapCandidates accepts a bare array or an object with exactly one key
// holding an array, e.g. {"suggestions": [...]}.
func unwrapCandidates(parsed json.RawMessage) ([]json.RawMessage, error) {
	var list []json.RawMessage
	switch firstByte(parsed) {
	case '[':
		if err := json.Unmarshal(parsed, &list); err != nil {
			return nil, utils.NewGenerationError(utils.ErrUnexpectedShape, "", err)
		}
		return list, nil
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(parsed, &obj); err != nil {
			return nil, utils.NewGenerationError(utils.ErrUnexpectedShape, "", err)
		}
		if len(obj) != 1 {
			return nil, utils.NewGenerationError(utils.ErrUnexpectedShape, fmt.Sprintf("object with %d keys", len(obj)), nil)
		}
		for key, value := range obj {
			if firstByte(value) != '[' {
				return nil, utils.NewGenerationError(utils.ErrUnexpectedShape, fmt.Sprintf("key %q does not hold an array", key), nil)
			}
			if err := json.Unmarshal(value, &list); err != nil {
				return nil, utils.NewGenerationError(utils.ErrUnexpectedShape, "", err)
			}
		}
		return list, nil
	default:
		return nil, utils.NewGenerationError(utils.ErrUnexpectedShape, "top level value is neither array nor object", nil)
	}
}

func validateCandidate(el json.RawMessage) (Candidate, error) {
	if firstByte(el) != '{' {
		return Candidate{}, errors.New("not an object")
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(el, &fields); err != nil {
		return Candidate{}, err
	}

	values := make(map[string]string, len(requiredFields))
	for _, name := range requiredFields {
		raw, ok := fields[name]
		if !ok {
			return Candidate{}, fmt.Errorf("missing %q", name)
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || firstByte(raw) != '"' {
			return Candidate{}, fmt.Errorf("%q is not a string", name)
		}
		if strings.TrimSpace(s) == "" {
			return Candidate{}, fmt.Errorf("%q is empty", name)
		}
		values[name] = strings.TrimSpace(s)
	}

	c := Candidate{
		Name:              values["name"],
		Description:       values["description"],
		MatchReason:       values["matchReason"],
		DetailedReasoning: values["detailedReasoning"],
		Suitability:       values["suitability"],
		NearestAirports:   values["nearestAirports"],
	}

	// mustDoActivities is optional; null counts as absent.
	if raw, ok := fields["mustDoActivities"]; ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		var items []json.RawMessage
		if firstByte(raw) != '[' || json.Unmarshal(raw, &items) != nil {
			return Candidate{}, errors.New(`"mustDoActivities" is not an array`)
		}
		activities := make([]string, 0, len(items))
		for j, item := range items {
			var s string
			if firstByte(item) != '"' || json.Unmarshal(item, &s) != nil {
				return Candidate{}, fmt.Errorf(`"mustDoActivities"[%d] is not a string`, j)
			}
			activities = append(activities, s)
		}
		if len(activities) > 0 {
			c.MustDoActivities = activities
		}
	}
	return c, nil
}

// Normalizer validates generator output and decorates each destination with
// links and an image.
type Normalizer struct {
	images         utils.ImageSearcher
	log            logger.Logger
	maxConcurrency int
}

func NewNormalizer(images utils.ImageSearcher, log logger.Logger, maxConcurrency int) *Normalizer {
	if images == nil {
		images = utils.DisabledImageSearcher{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	if maxConcurrency <= 0 {
		maxConcurrency = DefaultImageLookupConcurrency
	}
	return &Normalizer{images: images, log: log, maxConcurrency: maxConcurrency}
}

// Normalize returns suggestions in the order the generator produced them. When
// the generator reported truncation, any parse or validation failure becomes
// ErrTruncatedOutput.
func (n *Normalizer) Normalize(ctx context.Context, result utils.GenerationResult) ([]response_models.Suggestion, error) {
	candidates, err := ParseCandidates(result.Text)
	if err != nil {
		n.log.Warn("generation output rejected",
			logger.String("code", utils.GenerationErrorCode(err)),
			logger.Bool("truncated", result.Truncated),
			logger.String("model", result.Model),
			logger.String("raw_prefix", rawPrefix(result.Text)),
		)
		if result.Truncated {
			return nil, utils.NewGenerationError(utils.ErrTruncatedOutput, "", err)
		}
		return nil, err
	}
	if result.Truncated {
		n.log.Warn("generation output truncated but valid", logger.Int("count", len(candidates)))
	}

	suggestions := make([]response_models.Suggestion, len(candidates))
	for i, c := range candidates {
		suggestions[i] = decorate(c, i)
	}

	var g errgroup.Group
	g.SetLimit(n.maxConcurrency)
	for i := range suggestions {
		s := &suggestions[i]
		g.Go(func() error {
			n.attachImage(ctx, s)
			return nil
		})
	}
	_ = g.Wait()

	return suggestions, nil
}

// NormalizeText is Normalize for text that carries no truncation signal.
func (n *Normalizer) NormalizeText(ctx context.Context, raw string) ([]response_models.Suggestion, error) {
	return n.Normalize(ctx, utils.GenerationResult{Text: raw})
}

func decorate(c Candidate, index int) response_models.Suggestion {
	slug := utils.Slugify(c.Name)
	return response_models.Suggestion{
		ID:                slug + "-" + strconv.Itoa(index),
		Name:              c.Name,
		Description:       c.Description,
		MatchReason:       c.MatchReason,
		DetailedReasoning: c.DetailedReasoning,
		Suitability:       c.Suitability,
		NearestAirports:   c.NearestAirports,
		MustDoActivities:  c.MustDoActivities,
		MapsURL:           utils.MapsSearchURL(c.Name),
		SearchURL:         utils.ReviewSearchURL(c.Name),
		ImagesURL:         utils.ImageSearchURL(c.Name),
		ImageURL:          utils.PlaceholderImageURL(slug),
		ImageAlt:          c.Name,
		ImageSource:       utils.ImageSourcePlaceholder,
	}
}

// attachImage never fails; on any lookup problem the placeholder set by
// decorate stays in place.
func (n *Normalizer) attachImage(ctx context.Context, s *response_models.Suggestion) {
	img, err := n.images.SearchImage(ctx, s.Name)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrImageServiceDisabled):
		case errors.Is(err, utils.ErrImageNotFound):
			n.log.Debug("no image for destination", logger.String("name", s.Name))
		default:
			n.log.Warn("image lookup failed, using placeholder", logger.String("name", s.Name), logger.Error(err))
		}
		return
	}
	if img == nil || img.URL == "" {
		return
	}
	s.ImageURL = img.URL
	s.BlurHash = img.BlurHash
	if img.AltText != "" {
		s.ImageAlt = img.AltText
	}
	s.ImageSource = img.Source
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func rawPrefix(s string) string {
	if len(s) <= rawPrefixLimit {
		return s
	}
	cut := rawPrefixLimit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func firstByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
