package domain

// Built-in seeds used when neither the remote store nor the local cache has a
// value. A brand-new platform still renders a usable storefront from these.

var SeedCategories = []string{
	"Birthday",
	"Wedding",
	"Custom",
}

var SeedCakes = []Cake{
	{
		ID:          "seed-birthday-sparkle",
		Name:        "Farah Birthday Sparkle",
		Description: "A celebration in every bite! Fluffy vanilla sponge with colorful sprinkles and silky smooth buttercream.",
		Price:       85000,
		Category:    "Birthday",
		ImageURL:    "https://images.unsplash.com/photo-1535141192574-5d4897c82536?q=80&w=1000&auto=format&fit=crop",
	},
	{
		ID:          "seed-bridal-elegance",
		Name:        "Farah Bridal Elegance",
		Description: "An exquisite three-tiered masterpiece with delicate lace piping and fresh floral accents.",
		Price:       450000,
		Category:    "Wedding",
		ImageURL:    "https://images.unsplash.com/photo-1522673607200-164883eecd4c?q=80&w=1000&auto=format&fit=crop",
	},
	{
		ID:          "seed-artistic-custom",
		Name:        "Farah Artistic Custom",
		Description: "Your imagination, our creation. Hand-sculpted details and bespoke flavors tailored to your theme.",
		Price:       150000,
		Category:    "Custom",
		ImageURL:    "https://images.unsplash.com/photo-1562440499-64c9a111f713?q=80&w=1000&auto=format&fit=crop",
	},
	{
		ID:          "seed-velvet-dream",
		Name:        "Velvet Birthday Dream",
		Description: "Rich red velvet layers paired with our signature cream cheese frosting for the ultimate birthday indulgence.",
		Price:       110000,
		Category:    "Birthday",
		ImageURL:    "https://images.unsplash.com/photo-1464349095431-e9a21285b5f3?q=80&w=1000&auto=format&fit=crop",
	},
}
