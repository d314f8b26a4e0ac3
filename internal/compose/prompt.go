package compose

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/voyago/voyago/internal/htmltext"
	"github.com/voyago/voyago/internal/models"
)

const (
	postContentLimit = 200
	sectionTextLimit = 400
)

// buildPrompt assembles the generation request for one leg. Map-backed
// context is emitted in sorted key order so prompts stay deterministic.
func buildPrompt(leg Leg, attractions []attraction, schema *models.Schema) string {
	var prompt strings.Builder
	fmt.Fprintf(&prompt,
		"Create a detailed daily travel itinerary for a trip from %v to %v from %v to %v. ",
		leg.Leg.Origin,
		leg.Leg.Destination,
		leg.Leg.StartDate.Format(models.DateFormat),
		leg.Leg.EndDate.Format(models.DateFormat))
	fmt.Fprintf(&prompt,
		"You will be staying at %v which costs $%.2f per night. ",
		leg.Hotel.Name, leg.Hotel.NightlyRate)
	fmt.Fprintf(&prompt,
		"The remaining budget for daily expenses is $%.2f. ", leg.Remaining)
	prompt.WriteString("Ensure the final output matches the JSON schema provided.\n\n")
	fmt.Fprintf(&prompt, "JSON Schema:\n%v\n\n", schema.JSON())

	prompt.WriteString("Itinerary Details:\n")
	for _, a := range attractions {
		fmt.Fprintf(&prompt, "- %v (%v away, ~%v walk)\n", a.name, a.distance, a.duration)
	}

	writeWeather(&prompt, leg.Context.Weather)
	writeFlights(&prompt, leg.Flight, leg.Inbound)
	writePosts(&prompt, leg.Context.Posts)
	writeBackground(&prompt, leg.Context.Background)

	prompt.WriteString("Plan out each day with these attractions, ensure it fits in the budget, and summarize daily costs.\n" +
		"For each day, include at least 4 distinct nearby attractions or activities.\n" +
		"Suggestions on what to pack according to the weather, and safety measures based on the traveler discussions and comments.\n" +
		"Do not output any arithmetic expressions; compute all arithmetic and return numeric values only.\n" +
		"Please output the itinerary in JSON format that adheres exactly to the provided JSON schema.")
	return prompt.String()
}

func writeWeather(prompt *strings.Builder, weather map[string]models.DayWeather) {
	if len(weather) == 0 {
		return
	}
	prompt.WriteString("\nWeather information:\n")
	dates := maps.Keys(weather)
	sort.Strings(dates)
	for _, date := range dates {
		info := weather[date]
		fmt.Fprintf(prompt, "- %v: %v, Day Temp: %v°C, Night Temp: %v°C\n",
			date, info.Description, info.TempHigh, info.TempLow)
	}
}

func writeFlights(prompt *strings.Builder, flight models.Flight, inbound *models.Flight) {
	prompt.WriteString("\nFlight Details:\n")
	fmt.Fprintf(prompt, "Outbound: Flight %v by %v at $%.2f, Duration: %v minutes.\n",
		flight.FlightNumber, flight.Airplane, flight.Price, flight.DurationMinutes)
	if inbound != nil {
		fmt.Fprintf(prompt, "Inbound: Flight %v by %v at $%.2f, Duration: %v minutes.\n",
			inbound.FlightNumber, inbound.Airplane, inbound.Price, inbound.DurationMinutes)
	}
}

func writePosts(prompt *strings.Builder, posts []models.DiscussionPost) {
	if len(posts) == 0 {
		prompt.WriteString("\nNo recent traveler discussions found.\n")
		return
	}
	prompt.WriteString("\nRecent traveler discussions:\n")
	for i, post := range posts {
		content := post.Text()
		if content == "" {
			content = "[No content]"
		}
		fmt.Fprintf(prompt, "%v. %v\n", i+1, htmltext.Truncate(content, postContentLimit))
		if len(post.Comments) == 0 {
			prompt.WriteString("   [No comments available]\n")
			continue
		}
		for _, comment := range post.Comments {
			fmt.Fprintf(prompt, "   Comment: %v\n", comment)
		}
	}
}

func writeBackground(prompt *strings.Builder, background map[string]string) {
	if len(background) == 0 {
		prompt.WriteString("\nNo background information found.\n")
		return
	}
	prompt.WriteString("\nBackground:\n")
	sections := maps.Keys(background)
	sort.Strings(sections)
	for _, section := range sections {
		fmt.Fprintf(prompt, "--- %v ---\n%v\n\n", section, htmltext.Truncate(background[section], sectionTextLimit))
	}
}
