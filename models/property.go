package models

import "time"

// Property represents a single Huispedia listing. Pointer fields
// distinguish "absent on the page" from a genuine zero; a field is either
// a parsed value or nil, never a placeholder.
type Property struct {
	// Basic info
	URL       string `json:"url"`
	ListingID string `json:"listing_id"`
	Title     string `json:"title"`

	// Address
	StreetAddress string `json:"street_address"`
	PostalCode    string `json:"postal_code"`
	City          string `json:"city"`
	Province      string `json:"province"`

	// Price
	Price       *int   `json:"price"`
	PricePerSqm *int   `json:"price_per_sqm"`
	PriceType   string `json:"price_type"` // k.k. (kosten koper) or v.o.n. (vrij op naam)

	// Value comparison
	ValueComparison string `json:"value_comparison"` // Onder/Binnen/Boven de waarde

	// Dimensions
	LivingArea *int `json:"living_area"`
	PlotSize   *int `json:"plot_size"`
	Volume     *int `json:"volume"`

	// Rooms
	Rooms     *int `json:"rooms"`
	Bedrooms  *int `json:"bedrooms"`
	Bathrooms *int `json:"bathrooms"`
	Floors    *int `json:"floors"`

	// Property characteristics
	PropertyType   string `json:"property_type"` // Eengezinswoning, Appartement, etc.
	HouseType      string `json:"house_type"`    // Hoekwoning, Tussenwoning, etc.
	BuildType      string `json:"build_type"`    // Bestaande bouw, Nieuwbouw
	YearBuilt      *int   `json:"year_built"`
	RenovationYear *int   `json:"renovation_year"`

	// Energy
	EnergyLabel string `json:"energy_label"`
	Insulation  string `json:"insulation"`
	Heating     string `json:"heating"`
	CVYear      *int   `json:"cv_year"`

	// Features
	RoofType          string `json:"roof_type"`
	KitchenType       string `json:"kitchen_type"`
	KitchenAmenities  string `json:"kitchen_amenities"`
	BathroomAmenities string `json:"bathroom_amenities"`

	// Location
	LocationType string `json:"location_type"` // in het centrum, aan water, etc.
	ParkingType  string `json:"parking_type"`

	// Condition
	MaintenanceInside  string `json:"maintenance_inside"`
	MaintenanceOutside string `json:"maintenance_outside"`

	// Status
	Status      string `json:"status"`
	ListedSince string `json:"listed_since"`
	Acceptance  string `json:"acceptance"`

	// Cadastral
	CadastralInfo string `json:"cadastral_info"`

	// Description
	Description string `json:"description"`

	// Agent
	AgentName string `json:"agent_name"`
	AgentURL  string `json:"agent_url"`

	// Metadata
	DateScraped string `json:"date_scraped"`
}

// New creates a Property for the given listing URL with the scrape
// timestamp set.
func New(url string) *Property {
	return &Property{
		URL:         url,
		DateScraped: time.Now().Format(time.RFC3339),
	}
}

// FieldNames returns the flat-map field names in output column order.
func FieldNames() []string {
	return []string{
		"url", "listing_id", "title",
		"street_address", "postal_code", "city", "province",
		"price", "price_per_sqm", "price_type",
		"value_comparison",
		"living_area", "plot_size", "volume",
		"rooms", "bedrooms", "bathrooms", "floors",
		"property_type", "house_type", "build_type", "year_built", "renovation_year",
		"energy_label", "insulation", "heating", "cv_year",
		"roof_type", "kitchen_type", "kitchen_amenities", "bathroom_amenities",
		"location_type", "parking_type",
		"maintenance_inside", "maintenance_outside",
		"status", "listed_since", "acceptance",
		"cadastral_info", "description",
		"agent_name", "agent_url",
		"date_scraped",
	}
}

// ToMap converts the property to a flat field-name-to-value mapping.
// Absent numeric fields map to nil. The conversion is pure and total.
func (p *Property) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"url":                 p.URL,
		"listing_id":          p.ListingID,
		"title":               p.Title,
		"street_address":      p.StreetAddress,
		"postal_code":         p.PostalCode,
		"city":                p.City,
		"province":            p.Province,
		"price":               intOrNil(p.Price),
		"price_per_sqm":       intOrNil(p.PricePerSqm),
		"price_type":          p.PriceType,
		"value_comparison":    p.ValueComparison,
		"living_area":         intOrNil(p.LivingArea),
		"plot_size":           intOrNil(p.PlotSize),
		"volume":              intOrNil(p.Volume),
		"rooms":               intOrNil(p.Rooms),
		"bedrooms":            intOrNil(p.Bedrooms),
		"bathrooms":           intOrNil(p.Bathrooms),
		"floors":              intOrNil(p.Floors),
		"property_type":       p.PropertyType,
		"house_type":          p.HouseType,
		"build_type":          p.BuildType,
		"year_built":          intOrNil(p.YearBuilt),
		"renovation_year":     intOrNil(p.RenovationYear),
		"energy_label":        p.EnergyLabel,
		"insulation":          p.Insulation,
		"heating":             p.Heating,
		"cv_year":             intOrNil(p.CVYear),
		"roof_type":           p.RoofType,
		"kitchen_type":        p.KitchenType,
		"kitchen_amenities":   p.KitchenAmenities,
		"bathroom_amenities":  p.BathroomAmenities,
		"location_type":       p.LocationType,
		"parking_type":        p.ParkingType,
		"maintenance_inside":  p.MaintenanceInside,
		"maintenance_outside": p.MaintenanceOutside,
		"status":              p.Status,
		"listed_since":        p.ListedSince,
		"acceptance":          p.Acceptance,
		"cadastral_info":      p.CadastralInfo,
		"description":         p.Description,
		"agent_name":          p.AgentName,
		"agent_url":           p.AgentURL,
		"date_scraped":        p.DateScraped,
	}
}

// FromMap reconstructs a Property from its flat mapping. Missing keys and
// nil values leave the corresponding field at its zero value, so the
// conversion round-trips exactly with ToMap.
func FromMap(m map[string]interface{}) *Property {
	return &Property{
		URL:                mapString(m, "url"),
		ListingID:          mapString(m, "listing_id"),
		Title:              mapString(m, "title"),
		StreetAddress:      mapString(m, "street_address"),
		PostalCode:         mapString(m, "postal_code"),
		City:               mapString(m, "city"),
		Province:           mapString(m, "province"),
		Price:              mapInt(m, "price"),
		PricePerSqm:        mapInt(m, "price_per_sqm"),
		PriceType:          mapString(m, "price_type"),
		ValueComparison:    mapString(m, "value_comparison"),
		LivingArea:         mapInt(m, "living_area"),
		PlotSize:           mapInt(m, "plot_size"),
		Volume:             mapInt(m, "volume"),
		Rooms:              mapInt(m, "rooms"),
		Bedrooms:           mapInt(m, "bedrooms"),
		Bathrooms:          mapInt(m, "bathrooms"),
		Floors:             mapInt(m, "floors"),
		PropertyType:       mapString(m, "property_type"),
		HouseType:          mapString(m, "house_type"),
		BuildType:          mapString(m, "build_type"),
		YearBuilt:          mapInt(m, "year_built"),
		RenovationYear:     mapInt(m, "renovation_year"),
		EnergyLabel:        mapString(m, "energy_label"),
		Insulation:         mapString(m, "insulation"),
		Heating:            mapString(m, "heating"),
		CVYear:             mapInt(m, "cv_year"),
		RoofType:           mapString(m, "roof_type"),
		KitchenType:        mapString(m, "kitchen_type"),
		KitchenAmenities:   mapString(m, "kitchen_amenities"),
		BathroomAmenities:  mapString(m, "bathroom_amenities"),
		LocationType:       mapString(m, "location_type"),
		ParkingType:        mapString(m, "parking_type"),
		MaintenanceInside:  mapString(m, "maintenance_inside"),
		MaintenanceOutside: mapString(m, "maintenance_outside"),
		Status:             mapString(m, "status"),
		ListedSince:        mapString(m, "listed_since"),
		Acceptance:         mapString(m, "acceptance"),
		CadastralInfo:      mapString(m, "cadastral_info"),
		Description:        mapString(m, "description"),
		AgentName:          mapString(m, "agent_name"),
		AgentURL:           mapString(m, "agent_url"),
		DateScraped:        mapString(m, "date_scraped"),
	}
}

// IntPtr returns a pointer to n.
func IntPtr(n int) *int {
	return &n
}

func intOrNil(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func mapString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func mapInt(m map[string]interface{}, key string) *int {
	switch v := m[key].(type) {
	case int:
		n := v
		return &n
	case int64:
		n := int(v)
		return &n
	case float64:
		n := int(v)
		return &n
	}
	return nil
}
