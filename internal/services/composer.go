package services

import (
	"fmt"
	"strings"

	"wanderwise/internal/models/request_models"
	"wanderwise/pkg/utils"
)

const (
	NormalCount   = 6
	SurpriseCount = 5

	DefaultNormalTemperature   = 0.9
	DefaultSurpriseTemperature = 0.95
)

const (
	notSpecified      = "Not specified"
	interestsFallback = "Not specified, focus on primary preferences"
	anyMonth          = "Any"
	openChoice        = "Open, pick whatever fits the other preferences best"
)

// suggestionSchema is listed verbatim in every prompt so the normalizer never
// has to care which mode produced a batch.
const suggestionSchema = `{
  "name": "string",
  "description": "string",
  "matchReason": "string",
  "detailedReasoning": "string",
  "suitability": "string",
  "nearestAirports": "string",
  "mustDoActivities": ["string", "string", "string"]
}`

// Composer turns a PreferenceSet into the instruction sent to the text generator.
type Composer struct {
	normalTemperature   float64
	surpriseTemperature float64
}

// NewComposer falls back to the default temperatures when the pair given would
// not keep surprise mode strictly hotter than normal mode.
func NewComposer(normalTemperature, surpriseTemperature float64) *Composer {
	if normalTemperature <= 0 || surpriseTemperature <= normalTemperature {
		normalTemperature = DefaultNormalTemperature
		surpriseTemperature = DefaultSurpriseTemperature
	}
	return &Composer{
		normalTemperature:   normalTemperature,
		surpriseTemperature: surpriseTemperature,
	}
}

func (c *Composer) Compose(prefs request_models.PreferenceSet) utils.GenerationRequest {
	prefs = prefs.Normalized()
	surprise := prefs.IsSurprise()

	count, temperature := NormalCount, c.normalTemperature
	if surprise {
		count, temperature = SurpriseCount, c.surpriseTemperature
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a highly discerning and experienced travel advisor, known for unearthing hidden gems and perfectly tailored niche experiences. "+
		"Your primary goal is to provide %d TRULY DIVERSE, INTRIGUING, and NON-OBVIOUS travel destinations. "+
		"Actively AVOID clichés, common tourist traps, or overly similar suggestions. Challenge yourself to find genuinely unique options. "+
		"If a request is broad, ensure a wide variety of experiences and locations.\n", count)

	if surprise {
		b.WriteString("\n**SURPRISE MODE**\n" +
			"The traveller wants you to be exceptionally creative and suggest highly diverse and unexpected destinations. " +
			"They have only specified their budget and travel companions. For every other criterion (holiday type, climate, interests, duration, travel month) you have complete freedom. " +
			"Aim for a mix of truly unique and varied experiences that fit the budget and companion type. Do not ask for more preferences.\n")
	}

	b.WriteString("\n")
	b.WriteString(monthParagraph(prefs, surprise))

	b.WriteString("\nFor each destination, provide:\n" +
		"1. \"name\": The name of the destination, including its country.\n" +
		"2. \"description\": A compelling, evocative description (2-3 sentences) highlighting what makes it unique for this traveller.\n" +
		"3. \"matchReason\": A concise, single-sentence explanation of why this destination is an insightful match for the preferences.\n" +
		"4. \"detailedReasoning\": 2-3 sentences on how specific features of the destination address several of the preferences at once.\n" +
		"5. \"suitability\": A short qualitative verdict, e.g. \"Perfect Niche Pick\", \"Unique Cultural Gem\", \"Offbeat Adventure\", \"Exciting Surprise!\".\n" +
		"6. \"nearestAirports\": A string listing 1-3 well-connected airports with their IATA codes.\n" +
		"7. \"mustDoActivities\": An array of 2-3 short strings, each a key highlight or must-do experience.\n")

	b.WriteString("\nTraveller preferences:\n")
	fmt.Fprintf(&b, "- Budget: %s\n", boundValue(prefs.Budget, notSpecified))
	fmt.Fprintf(&b, "- Travel Companions: %s\n", boundValue(prefs.Companions, notSpecified))
	if surprise {
		b.WriteString("- Other Preferences: determine these creatively, based only on the budget and companions above. Keep the suggestions genuinely varied.\n")
	} else {
		fmt.Fprintf(&b, "- Holiday Type: %s\n", boundValue(prefs.HolidayType, notSpecified))
		fmt.Fprintf(&b, "- Preferred Climate: %s\n", boundValue(prefs.Climate, notSpecified))
		fmt.Fprintf(&b, "- Interests/Activities: %s\n", boundValue(prefs.Interests, interestsFallback))
		fmt.Fprintf(&b, "- Trip Duration: %s\n", boundValue(prefs.Duration, notSpecified))
		fmt.Fprintf(&b, "- Preferred Travel Month: %s\n", boundValue(prefs.TravelMonth, anyMonth))
	}

	fmt.Fprintf(&b, "\nReturn your response as a JSON array of exactly %d objects. Each object must strictly follow this structure:\n%s\n", count, suggestionSchema)
	fmt.Fprintf(&b, "\nCRITICAL INSTRUCTIONS:\n"+
		"- The response MUST be ONLY the JSON, with no prose, headings or markdown around it.\n"+
		"- If your output format requires an object, wrap the array in a single key: {\"suggestions\": [...]}.\n"+
		"- Every field except mustDoActivities is a required non-empty string.\n"+
		"- Generate ALL %d distinct suggestions.\n", count)
	if surprise {
		b.WriteString("- The suggestions must be genuinely surprising and diverse, yet still feel curated and thoughtful.\n")
	}

	return utils.GenerationRequest{
		Prompt:           b.String(),
		Count:            count,
		Temperature:      temperature,
		StructuredOutput: true,
		Surprise:         surprise,
	}
}

func monthParagraph(prefs request_models.PreferenceSet, surprise bool) string {
	month := boundValue(prefs.TravelMonth, anyMonth)
	if surprise {
		month = "you pick what suits each destination best, or assume its general best travel time"
	}
	return fmt.Sprintf("For the chosen travel month (%s):\n"+
		"- Briefly explain how the month shapes the experience (festivals, seasonal beauty, crowds, weather).\n"+
		"- Keep every suggestion seasonally appropriate for that month.\n", month)
}

// boundValue renders a preference for the prompt. Blank values degrade to
// fallback and a stray surprise sentinel is never shown literally.
func boundValue(v, fallback string) string {
	switch {
	case v == "":
		return fallback
	case v == request_models.SurpriseSentinel:
		return openChoice
	default:
		return v
	}
}
