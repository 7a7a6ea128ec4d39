package halls

import (
	"fmt"
	"strings"
)

// HallType — Technical или Non-Technical.
type HallType string

const (
	HallTypeTechnical    HallType = "Technical"
	HallTypeNonTechnical HallType = "Non-Technical"
)

// Hall — запись статического каталога.
type Hall struct {
	Name        string   `json:"name"`
	Capacity    int      `json:"capacity"`
	Type        HallType `json:"type"`
	Score       int      `json:"score"`
	Rating      float64  `json:"rating"`
	Location    string   `json:"location"`
	IoTFeatures []string `json:"iotFeatures"`
	WiFiSpeed   int      `json:"wifiSpeed"`
	AC          bool     `json:"ac"`
	SmartBoard  bool     `json:"smartBoard"`
	Computers   int      `json:"computers"`
	Mics        int      `json:"mics"`
	SoundSystem string   `json:"soundSystem"`
}

// catalog упорядочен по score, лучшие первыми. При равенстве побеждает
// более ранняя запись.
var catalog = []Hall{
	{
		Name:        "Gandhi Auditorium",
		Capacity:    200,
		Type:        HallTypeTechnical,
		Score:       95,
		Rating:      4.9,
		Location:    "Central Block - Second Floor",
		IoTFeatures: []string{"Temperature_Sensor", "Light_Sensor", "Air_Quality", "Motion_Sensor"},
		WiFiSpeed:   1000,
		AC:          true,
		SmartBoard:  true,
		Computers:   50,
		Mics:        6,
		SoundSystem: "Premium",
	},
	{
		Name:        "APJ Abdul Kalam Hall",
		Capacity:    150,
		Type:        HallTypeTechnical,
		Score:       90,
		Rating:      4.7,
		Location:    "Science Block - Third Floor",
		IoTFeatures: []string{"Temperature_Sensor", "Light_Sensor", "Air_Quality", "Occupancy_Sensor"},
		WiFiSpeed:   1000,
		AC:          true,
		SmartBoard:  true,
		Computers:   40,
		Mics:        4,
		SoundSystem: "Premium",
	},
	{
		Name:        "Nehru Hall",
		Capacity:    120,
		Type:        HallTypeTechnical,
		Score:       85,
		Rating:      4.8,
		Location:    "Main Building - Ground Floor",
		IoTFeatures: []string{"Temperature_Sensor", "Light_Sensor", "Air_Quality"},
		WiFiSpeed:   1000,
		AC:          true,
		SmartBoard:  true,
		Computers:   30,
		Mics:        4,
		SoundSystem: "Premium",
	},
	{
		Name:        "CV Raman Hall",
		Capacity:    140,
		Type:        HallTypeTechnical,
		Score:       80,
		Rating:      4.5,
		Location:    "Physics Block - Ground Floor",
		IoTFeatures: []string{"Temperature_Sensor", "Light_Sensor", "Air_Quality"},
		WiFiSpeed:   1000,
		AC:          true,
		SmartBoard:  true,
		Computers:   35,
		Mics:        4,
		SoundSystem: "Premium",
	},
	{
		Name:        "Saraswati Hall",
		Capacity:    90,
		Type:        HallTypeNonTechnical,
		Score:       75,
		Rating:      4.3,
		Location:    "Arts Block - Second Floor",
		IoTFeatures: []string{"Temperature_Sensor", "Light_Sensor"},
		WiFiSpeed:   500,
		AC:          true,
		SmartBoard:  true,
		Computers:   10,
		Mics:        3,
		SoundSystem: "Standard",
	},
	{
		Name:        "Tagore Hall",
		Capacity:    80,
		Type:        HallTypeNonTechnical,
		Score:       70,
		Rating:      4.2,
		Location:    "Arts Block - First Floor",
		IoTFeatures: []string{"Temperature_Sensor", "Light_Sensor"},
		WiFiSpeed:   500,
		AC:          true,
		SmartBoard:  false,
		Computers:   0,
		Mics:        2,
		SoundSystem: "Standard",
	},
}

// Catalog возвращает копию всех залов.
func Catalog() []Hall {
	out := make([]Hall, len(catalog))
	copy(out, catalog)
	return out
}

// Names возвращает названия залов в порядке каталога.
func Names() []string {
	names := make([]string, len(catalog))
	for i, h := range catalog {
		names[i] = h.Name
	}
	return names
}

// Find ищет зал по названию без учёта регистра и пробелов по краям.
func Find(name string) (Hall, bool) {
	name = strings.TrimSpace(name)
	for _, h := range catalog {
		if strings.EqualFold(h.Name, name) {
			return h, true
		}
	}
	return Hall{}, false
}

// Offers сообщает, есть ли в зале оборудование в свободной форме, например
// "SmartBoard", "Computers" или "Sound System".
func (h Hall) Offers(facility string) bool {
	f := strings.ToLower(facility)
	switch {
	case strings.Contains(f, "smart"), strings.Contains(f, "projector"):
		return h.SmartBoard
	case strings.Contains(f, "computer"), strings.Contains(f, "lab"), strings.Contains(f, "pc"):
		return h.Computers > 0
	case strings.Contains(f, "mic"):
		return h.Mics > 0
	case strings.Contains(f, "sound"), strings.Contains(f, "audio"), strings.Contains(f, "speaker"):
		return h.SoundSystem != ""
	case strings.Contains(f, "wifi"), strings.Contains(f, "wi-fi"), strings.Contains(f, "internet"):
		return h.WiFiSpeed > 0
	case f == "ac", strings.Contains(f, "air condition"), strings.Contains(f, "climate"):
		return h.AC
	case strings.Contains(f, "iot"), strings.Contains(f, "sensor"):
		return len(h.IoTFeatures) > 0
	default:
		return false
	}
}

// csvRows выводит каталог в формате, который ожидает промпт подбора.
func csvRows() string {
	var sb strings.Builder
	sb.WriteString("HallName,Capacity,Type,IoT_Features,WiFiSpeed,AC,SmartBoard,Computers,Mics,SoundSystem,Location,Rating\n")
	for _, h := range catalog {
		fmt.Fprintf(&sb, "%s,%d,%s,%s,%d,%s,%s,%d,%d,%s,%s,%.1f\n",
			h.Name, h.Capacity, h.Type, strings.Join(h.IoTFeatures, "|"), h.WiFiSpeed,
			yesNo(h.AC), yesNo(h.SmartBoard), h.Computers, h.Mics, h.SoundSystem,
			h.Location, h.Rating)
	}
	return sb.String()
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
