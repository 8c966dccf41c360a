package job

import (
	"fmt"
	"strings"
)

var knownDescriptions = map[string]string{
	"houskeeping supervisor":              "Oversees cleaning staff and ensures hotel rooms meet cleanliness standards.",
	"laundry dry cleaner":                 "Handles professional garment cleaning and pressing services.",
	"sushi chef":                          "Prepares and presents traditional Japanese sushi dishes.",
	"captain order":                       "Leads the service team in restaurants, ensuring smooth operations.",
	"cdp":                                 "Chef de Partie - responsible for a specific section in the kitchen.",
	"demi cheif":                          "Junior chef position assisting in food preparation.",
	"sales merchandiser":                  "Promotes products and maximizes sales in retail environments.",
	"equipment operator":                  "Operates heavy machinery for construction or industrial purposes.",
	"operations agent":                    "Coordinates logistical operations and ensures smooth workflows.",
	"engineering and maintenance manager": "Oversees facility maintenance and engineering teams.",
	"mas paints":                          "Specializes in painting services and surface treatments.",
}

// DefaultDescription is used when there is no title to describe
const DefaultDescription = "No description available for this position."

// StaticDescriptions resolves known titles from a fixed table and falls back to a
// generic sentence naming the title
type StaticDescriptions struct {
	table map[string]string
}

func NewStaticDescriptions() *StaticDescriptions {
	return &StaticDescriptions{table: knownDescriptions}
}

func (d *StaticDescriptions) Resolve(title string) string {
	key := strings.ToLower(strings.TrimSpace(title))
	if key == "" {
		return DefaultDescription
	}
	if desc, ok := d.table[key]; ok {
		return desc
	}
	return fmt.Sprintf("This is a %s position. More details will be provided during the interview process.", strings.TrimSpace(title))
}

var _ DescriptionResolver = (*StaticDescriptions)(nil)
