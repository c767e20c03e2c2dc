package model

const (
	ZoneUrban = "Urbana"
	ZoneRural = "Rural"
)

const (
	KindReservation = "reservation"
	KindQuotation   = "quotation"
)

// Amounts are in whole pesos.
const (
	UrbanRate      int64 = 480000
	RuralRate      int64 = 650000
	IncludedSongs        = 7
	ExtraSongPrice int64 = 10000
)

// BaseRate returns the zone tariff. Anything other than rural is billed as urban.
func BaseRate(zone string) int64 {
	if zone == ZoneRural {
		return RuralRate
	}

	return UrbanRate
}
