package centers

// recyclingCenters is the static directory shipped with the service. Entries
// are curated, not crawled; additions go through code review.
var recyclingCenters = []Center{
	// Karnataka
	{
		ID:            "1",
		Name:          "E-Parisaraa Pvt Ltd",
		Type:          "e-waste",
		Address:       "Dobbspet Industrial Area",
		City:          "Bangalore",
		State:         "Karnataka",
		Phone:         "+91 80 2371 5253",
		Hours:         "Mon-Sat: 9:00 AM - 6:00 PM",
		AcceptedItems: []string{"Computers", "Mobiles", "TVs", "Printers", "Batteries"},
		Latitude:      13.0827,
		Longitude:     77.5877,
	},
	{
		ID:            "2",
		Name:          "Saahas Zero Waste",
		Type:          "recyclable",
		Address:       "HSR Layout, Sector 1",
		City:          "Bangalore",
		State:         "Karnataka",
		Phone:         "+91 80 4965 1234",
		Hours:         "Mon-Sat: 8:00 AM - 6:00 PM",
		AcceptedItems: []string{"Paper", "Plastic", "Glass", "Tetra packs", "E-waste"},
		Latitude:      12.9121,
		Longitude:     77.6446,
	},
	{
		ID:            "3",
		Name:          "Karnataka Compost Development Corporation",
		Type:          "organic",
		Address:       "Mavallipura, Yelahanka",
		City:          "Bangalore",
		State:         "Karnataka",
		Phone:         "+91 80 2846 7890",
		Hours:         "Mon-Sun: 6:00 AM - 8:00 PM",
		AcceptedItems: []string{"Food waste", "Garden waste", "Agricultural waste"},
		Latitude:      13.1007,
		Longitude:     77.5963,
	},
	// Maharashtra
	{
		ID:            "4",
		Name:          "Eco Recycling Ltd (Ecoreco)",
		Type:          "e-waste",
		Address:       "Andheri East, MIDC",
		City:          "Mumbai",
		State:         "Maharashtra",
		Phone:         "+91 22 4005 2951",
		Hours:         "Mon-Sat: 9:30 AM - 6:30 PM",
		AcceptedItems: []string{"Computers", "Mobiles", "Servers", "Home appliances"},
		Latitude:      19.1136,
		Longitude:     72.8697,
	},
	{
		ID:            "5",
		Name:          "Sampurn(e)arth Environment Solutions",
		Type:          "organic",
		Address:       "Deonar, Govandi",
		City:          "Mumbai",
		State:         "Maharashtra",
		Phone:         "+91 98 6755 4400",
		Hours:         "Mon-Sat: 8:00 AM - 5:00 PM",
		AcceptedItems: []string{"Food waste", "Wet waste", "Garden waste"},
		Latitude:      19.0579,
		Longitude:     72.9085,
	},
	{
		ID:            "6",
		Name:          "Mumbai Hazardous Waste Facility",
		Type:          "hazardous",
		Address:       "Taloja Industrial Area",
		City:          "Navi Mumbai",
		State:         "Maharashtra",
		Hours:         "Mon-Fri: 9:00 AM - 5:00 PM",
		AcceptedItems: []string{"Chemicals", "Paints", "Batteries", "Medical waste"},
		Latitude:      19.0760,
		Longitude:     73.1000,
	},
	// Delhi
	{
		ID:            "7",
		Name:          "Attero Recycling",
		Type:          "e-waste",
		Address:       "Okhla Industrial Area Phase II",
		City:          "New Delhi",
		State:         "Delhi",
		Phone:         "+91 11 4165 8964",
		Hours:         "Mon-Sat: 9:00 AM - 6:00 PM",
		AcceptedItems: []string{"Laptops", "Phones", "Tablets", "Lithium batteries"},
		Latitude:      28.5355,
		Longitude:     77.2730,
	},
	{
		ID:            "8",
		Name:          "Chintan Environmental Research and Action Group",
		Type:          "recyclable",
		Address:       "Jangpura Extension",
		City:          "New Delhi",
		State:         "Delhi",
		Phone:         "+91 11 2437 4430",
		Hours:         "Mon-Sat: 9:00 AM - 5:00 PM",
		AcceptedItems: []string{"Paper", "Plastic", "Metal", "Glass"},
		Latitude:      28.5827,
		Longitude:     77.2448,
	},
	// Tamil Nadu
	{
		ID:            "9",
		Name:          "Trishyiraya Recycling India",
		Type:          "e-waste",
		Address:       "Ambattur Industrial Estate",
		City:          "Chennai",
		State:         "Tamil Nadu",
		Phone:         "+91 44 2625 3472",
		Hours:         "Mon-Sat: 9:00 AM - 6:00 PM",
		AcceptedItems: []string{"Computers", "Mobiles", "Circuit boards"},
		Latitude:      13.1143,
		Longitude:     80.1548,
	},
	{
		ID:            "10",
		Name:          "Chennai Corporation Resource Recovery Centre",
		Type:          "organic",
		Address:       "Kodungaiyur",
		City:          "Chennai",
		State:         "Tamil Nadu",
		Hours:         "Mon-Sun: 6:00 AM - 6:00 PM",
		AcceptedItems: []string{"Food waste", "Garden waste"},
		Latitude:      13.1336,
		Longitude:     80.2458,
	},
	// Telangana
	{
		ID:            "11",
		Name:          "Ramky Enviro Engineers",
		Type:          "hazardous",
		Address:       "Gachibowli",
		City:          "Hyderabad",
		State:         "Telangana",
		Phone:         "+91 40 2301 5000",
		Hours:         "Mon-Fri: 9:00 AM - 5:30 PM",
		AcceptedItems: []string{"Industrial waste", "Chemicals", "Medical waste"},
		Latitude:      17.4401,
		Longitude:     78.3489,
	},
	{
		ID:            "12",
		Name:          "Earth Recycler",
		Type:          "recyclable",
		Address:       "Secunderabad",
		City:          "Hyderabad",
		State:         "Telangana",
		Phone:         "+91 90 0078 9634",
		Hours:         "Mon-Sat: 9:00 AM - 7:00 PM",
		AcceptedItems: []string{"Paper", "Plastic", "Cardboard", "Metal scrap"},
		Latitude:      17.4399,
		Longitude:     78.4983,
	},
}
