package matchmaker

import (
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/donorconnect/donor-api/internal/model"
)

const (
	minMatches = 3
	maxMatches = 5
)

// BuildPrompt renders the matchmaking instruction for q. sample, when not
// nil, is shown to the model as an example of a registered donor.
func BuildPrompt(q model.MatchQuery, sample *model.Donor) string {
	var b strings.Builder

	b.WriteString("You are an AI assistant for DonorConnect, responsible for finding suitable donors for emergency requests.\n\n")
	b.WriteString("Your task is to identify the best potential matches from a list of registered donors based on the specific request details.\n\n")

	b.WriteString("**Request Details:**\n")
	fmt.Fprintf(&b, "- **Type:** %s\n", q.RequestType)
	fmt.Fprintf(&b, "- **Detail:** %s\n", q.Detail)
	fmt.Fprintf(&b, "- **Location:** %s\n\n", q.Location)

	if sample != nil {
		b.WriteString("**Donor Information (Sample):**\n")
		fmt.Fprintf(&b, "- Donor Name: %s\n", sample.Name)
		fmt.Fprintf(&b, "- Donor ID: %s\n", sample.ID)
		fmt.Fprintf(&b, "- Availability: %s\n", sample.Availability)
		if sample.Donations.BloodType != nil {
			fmt.Fprintf(&b, "- Blood Type: %s\n", *sample.Donations.BloodType)
		}
		fmt.Fprintf(&b, "- Registered Organs: %s\n", joinNames(sample.Donations.Organs))
		fmt.Fprintf(&b, "- Registered Tissues: %s\n\n", joinNames(sample.Donations.Tissues))
	}

	b.WriteString("**Matching Criteria:**\n")
	b.WriteString("1. **Compatibility:** Must be a compatible match (e.g., correct blood type, organ, or tissue).\n")
	b.WriteString("2. **Availability:** The donor must be marked as 'Available'.\n")
	b.WriteString("3. **Proximity:** Closer proximity to the request location results in a higher match score.\n\n")

	fmt.Fprintf(&b, "Based on the criteria and the sample donor, generate a list of %d-%d realistic but fictional donor matches. ", minMatches, maxMatches)
	b.WriteString("Calculate a 'matchScore' for each, where a higher score indicates a better match. ")
	b.WriteString("Ensure you return at least one donor with a high match score (above 80).\n")

	return b.String()
}

func joinNames[T ~string](items []T) string {
	if len(items) == 0 {
		return "None"
	}
	parts := make([]string, len(items))
	for i, v := range items {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// ResponseSchema is the JSON shape the model must answer with.
func ResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"matches": {
				Type:        genai.TypeArray,
				Description: "A list of potential donor matches.",
				MinItems:    genai.Ptr[int64](minMatches),
				MaxItems:    genai.Ptr[int64](maxMatches),
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"donorName": {Type: genai.TypeString, Description: "Full name of the potential donor."},
						"donorId":   {Type: genai.TypeString, Description: "The unique ID of the donor."},
						"matchScore": {
							Type:        genai.TypeInteger,
							Description: "A score from 0-100 indicating the quality of the match.",
							Minimum:     genai.Ptr[float64](0),
							Maximum:     genai.Ptr[float64](100),
						},
						"location":    {Type: genai.TypeString, Description: "The donor's location."},
						"isAvailable": {Type: genai.TypeBoolean, Description: "Whether the donor is currently marked as available."},
					},
					Required:         []string{"donorName", "donorId", "matchScore", "location", "isAvailable"},
					PropertyOrdering: []string{"donorName", "donorId", "matchScore", "location", "isAvailable"},
				},
			},
		},
		Required: []string{"matches"},
	}
}
