package geo

// Provinces is the closed list of the 26 DRC provinces, in the spelling the
// boundary dataset is expected to use. The catalog builder guarantees each of
// these stays resolvable even when the dataset drifts or drops a feature.
var Provinces = []string{
	"Bas-Uele",
	"Equateur",
	"Haut-Katanga",
	"Haut-Lomami",
	"Haut-Uele",
	"Ituri",
	"Kasai",
	"Kasai-Central",
	"Kasai-Oriental",
	"Kinshasa",
	"Kongo-Central",
	"Kwango",
	"Kwilu",
	"Lomami",
	"Lualaba",
	"Mai-Ndombe",
	"Maniema",
	"Mongala",
	"Nord-Kivu",
	"Nord-Ubangi",
	"Sankuru",
	"Sud-Kivu",
	"Sud-Ubangi",
	"Tanganyika",
	"Tshopo",
	"Tshuapa",
}

// ProvinceAliases maps a canonical province name to the alternate spellings,
// former names and largest-city nicknames users reach for in chat. Maintained
// by hand; extend it as new phrasings show up in session logs.
var ProvinceAliases = map[string][]string{
	"Kongo-Central":  {"Kongo Central", "Bas-Congo", "Bas Congo", "Matadi"},
	"Kasai":          {"Kasaï"},
	"Kasai-Central":  {"Kasai Central", "Kasaï Central", "Kananga"},
	"Kasai-Oriental": {"Kasai Oriental", "Kasaï Oriental", "Mbuji-Mayi", "Mbuji Mayi"},
	"Nord-Kivu":      {"North Kivu", "Goma"},
	"Sud-Kivu":       {"South Kivu", "Bukavu"},
	"Nord-Ubangi":    {"North Ubangi"},
	"Sud-Ubangi":     {"South Ubangi"},
	"Haut-Katanga":   {"Lubumbashi"},
	"Equateur":       {"Équateur", "Mbandaka"},
	"Mai-Ndombe":     {"Maï-Ndombe", "Inongo"},
	"Ituri":          {"Bunia"},
	"Tshopo":         {"Kisangani"},
	"Tanganyika":     {"Kalemie"},
	"Kinshasa":       {"Leopoldville", "Léopoldville"},
}
