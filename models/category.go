package models

var SuggestedCategories = []string{
	"Processor",
	"Graphics Card",
	"Memory",
	"Storage",
	"Motherboard",
	"Power Supply",
	"Monitor",
	"Keyboard",
	"Mouse",
	"Headphones",
}

var SuggestedBrands = []string{
	"AMD",
	"Intel",
	"NVIDIA",
	"Corsair",
	"G.SKILL",
	"Samsung",
	"Western Digital",
	"ASUS",
	"MSI",
	"Seasonic",
}

const PlaceholderImage = "/placeholder.svg"

// DemoProducts is shown on the storefront while the admin catalog is empty.
var DemoProducts = []Product{
	{
		ID:            1,
		Name:          "AMD Ryzen 5 5600X",
		Category:      "Processor",
		Brand:         "AMD",
		Price:         15999,
		DiscountPrice: Float64(13999),
		Image:         PlaceholderImage,
		Specs:         "6 Cores, 12 Threads, 3.7GHz Base Clock",
		Rating:        Float64(4.8),
		InStock:       true,
	},
	{
		ID:       2,
		Name:     "NVIDIA RTX 4060 Ti",
		Category: "Graphics Card",
		Brand:    "NVIDIA",
		Price:    42999,
		Image:    PlaceholderImage,
		Specs:    "8GB GDDR6, 2535MHz Boost Clock",
		Rating:   Float64(4.6),
		InStock:  false,
	},
	{
		ID:            3,
		Name:          "Corsair Vengeance 32GB DDR5",
		Category:      "Memory",
		Brand:         "Corsair",
		Price:         11499,
		DiscountPrice: Float64(9999),
		Image:         PlaceholderImage,
		Specs:         "2x16GB, 6000MHz, CL36",
		Rating:        Float64(4.7),
		InStock:       true,
	},
	{
		ID:       4,
		Name:     "Samsung 990 PRO 1TB",
		Category: "Storage",
		Brand:    "Samsung",
		Price:    10999,
		Image:    PlaceholderImage,
		Specs:    "NVMe PCIe 4.0, 7450MB/s read",
		Rating:   Float64(4.9),
		InStock:  true,
	},
}
