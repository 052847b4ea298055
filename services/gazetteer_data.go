package services

// DefaultGazetteer returns the built-in sub-area table for the Lower Mainland
// boards. Each call returns a fresh copy.
func DefaultGazetteer() *Gazetteer {
	return &Gazetteer{Boards: []Board{
		{
			Name: "Greater Vancouver",
			Cities: []City{
				{Name: "Vancouver", Neighborhoods: []string{
					"Arbutus", "Cambie", "Dunbar", "Fairview VW", "False Creek", "Kerrisdale",
					"Kitsilano", "MacKenzie Heights", "Marpole", "Oakridge VW", "Point Grey",
					"Quilchena", "S.W. Marine", "Shaughnessy", "South Cambie", "South Granville",
					"University VW", "Coal Harbour", "Downtown VW", "West End VW", "Yaletown",
					"Collingwood VE", "Fraser VE", "Grandview Woodland", "Hastings",
					"Hastings Sunrise", "Killarney VE", "Knight", "Main", "Mount Pleasant VE",
					"Renfrew VE", "Renfrew Heights", "South Marine", "Strathcona", "Victoria VE",
				}},
				{Name: "Burnaby", Neighborhoods: []string{
					"Brentwood Park", "Buckingham Heights", "Burnaby Hospital", "Capitol Hill BN",
					"Central Park BS", "Deer Lake", "Edmonds BE", "Forest Glen BS", "Highgate",
					"Metrotown", "Montecito", "Simon Fraser Univer.", "South Slope", "Sperling-Duthie",
					"Suncrest", "Willingdon Heights",
				}},
				{Name: "North Vancouver", Neighborhoods: []string{
					"Blueridge NV", "Capilano NV", "Central Lonsdale", "Deep Cove", "Delbrook",
					"Edgemont", "Lower Lonsdale", "Lynn Valley", "Lynnmour", "Norgate",
					"Pemberton Heights", "Upper Lonsdale", "Westlynn",
				}},
				{Name: "West Vancouver", Neighborhoods: []string{
					"Ambleside", "British Properties", "Caulfeild", "Cypress Park Estates",
					"Dundarave", "Horseshoe Bay WV", "Park Royal", "Whytecliff",
				}},
				{Name: "Richmond", Neighborhoods: []string{
					"Boyd Park", "Bridgeport RI", "Brighouse", "Broadmoor", "Garden City",
					"Ironwood", "Saunders", "Seafair", "Steveston North", "Steveston South",
					"Terra Nova", "West Cambie",
				}},
				{Name: "Coquitlam", Neighborhoods: []string{
					"Austin Heights", "Burke Mountain", "Canyon Springs", "Central Coquitlam",
					"Coquitlam East", "Eagle Ridge CQ", "Maillardville", "Ranch Park",
					"Westwood Plateau",
				}},
				{Name: "Port Moody", Neighborhoods: []string{
					"Barber Street", "College Park PM", "Heritage Mountain", "Ioco",
					"Klahanie", "Port Moody Centre",
				}},
				{Name: "New Westminster", Neighborhoods: []string{
					"Brunette", "Connaught Heights", "Downtown NW", "Fraserview NW",
					"Queens Park", "Sapperton", "The Heights NW", "Uptown NW",
				}},
				{Name: "Maple Ridge", Neighborhoods: []string{
					"Albion", "Cottonwood MR", "East Central", "Silver Valley", "Thornhill MR",
					"Websters Corners", "West Central",
				}},
				{Name: "Ladner", Neighborhoods: []string{
					"Hawthorne", "Holly", "Ladner Elementary", "Neilsen Grove",
				}},
				{Name: "Tsawwassen", Neighborhoods: []string{
					"Beach Grove", "Boundary Beach", "Cliff Drive", "English Bluff", "Pebble Hill",
				}},
			},
		},
		{
			Name: "Fraser Valley",
			Cities: []City{
				{Name: "Surrey", Neighborhoods: []string{
					"Bear Creek Green Timbers", "Bolivar Heights", "Cedar Hills", "Fleetwood Tynehead",
					"Guildford", "Panorama Ridge", "Queen Mary Park Surrey", "Sullivan Station",
					"Whalley", "Morgan Creek", "Grandview Surrey", "Crescent Bch Ocean Pk.",
				}},
				{Name: "White Rock", Neighborhoods: []string{
					"White Rock",
				}},
				{Name: "Langley", Neighborhoods: []string{
					"Aldergrove Langley", "Brookswood Langley", "Murrayville", "Walnut Grove",
					"Willoughby Heights", "Langley City", "Fort Langley",
				}},
				{Name: "Abbotsford", Neighborhoods: []string{
					"Abbotsford East", "Abbotsford West", "Aberdeen", "Central Abbotsford",
					"Poplar", "Sumas Mountain",
				}},
				{Name: "Mission", Neighborhoods: []string{
					"Hatzic", "Mission BC", "Mission-West", "Stave Falls",
				}},
				{Name: "North Delta", Neighborhoods: []string{
					"Annieville", "Nordel", "Scottsdale", "Sunshine Hills Woods",
				}},
			},
		},
		{
			Name: "Chilliwack",
			Cities: []City{
				{Name: "Chilliwack", Neighborhoods: []string{
					"Chilliwack Downtown", "Chilliwack Proper East", "Chilliwack Proper West",
					"Fairfield Island", "Promontory", "Sardis East Vedder", "Sardis West Vedder",
				}},
				{Name: "Agassiz", Neighborhoods: []string{
					"Agassiz",
				}},
				{Name: "Harrison Hot Springs", Neighborhoods: []string{
					"Harrison Hot Springs",
				}},
			},
		},
	}}
}
