package service

import "teslo-shop/internal/domain"

type seedUser struct {
	FullName string
	Email    string
	Password string
	Role     domain.Role
}

// Every seed user shares the first user's password.
var seedUsers = []seedUser{
	{FullName: "Test One", Email: "test1@google.com", Password: "Abc123", Role: domain.RoleAdmin},
	{FullName: "Test Two", Email: "test2@google.com", Password: "Abc123", Role: domain.RoleSeller},
	{FullName: "Test Three", Email: "test3@google.com", Password: "Abc123", Role: domain.RoleUser},
}

var seedProducts = []CreateProductInput{
	{
		Title:       "Men's Chill Crew Neck Sweatshirt",
		Description: "Introducing the Tesla Chill Collection. The Men's Chill Crew Neck Sweatshirt has a premium, heavyweight exterior and soft fleece interior for comfort in any season.",
		Price:       75,
		Stock:       7,
		Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
		Gender:      "men",
		Tags:        []string{"sweatshirt"},
		Images:      []string{"1740176-00-A_0_2000.jpg", "1740176-00-A_1.jpg"},
	},
	{
		Title:       "Men's Quilted Shirt Jacket",
		Description: "The Men's Quilted Shirt Jacket features a uniquely fit, quilted design for warmth and mobility in cold weather seasons.",
		Price:       200,
		Stock:       5,
		Sizes:       []string{"XS", "S", "M", "XL", "XXL"},
		Gender:      "men",
		Tags:        []string{"jacket"},
		Images:      []string{"1740507-00-A_0_2000.jpg", "1740507-00-A_1.jpg"},
	},
	{
		Title:       "Men's Raven Lightweight Zip Up Bomber Jacket",
		Description: "Introducing the Tesla Raven Collection. The Men's Raven Lightweight Zip Up Bomber has a premium, modern silhouette made from a sustainable bamboo cotton blend.",
		Price:       130,
		Stock:       10,
		Sizes:       []string{"S", "M", "L", "XL", "XXL"},
		Gender:      "men",
		Tags:        []string{"shirt"},
		Images:      []string{"1740250-00-A_0_2000.jpg", "1740250-00-A_1.jpg"},
	},
	{
		Title:       "Kids Cybertruck Long Sleeve Tee",
		Description: "Designed for fit, comfort and style, the Kids Cybertruck Graffiti Long Sleeve Tee features a water-based Cybertruck graffiti wordmark across the chest.",
		Price:       30,
		Stock:       10,
		Sizes:       []string{"XS", "S", "M"},
		Gender:      "kid",
		Tags:        []string{"shirt"},
		Images:      []string{"1742694-00-A_1_2000.jpg", "1742694-00-A_3.jpg"},
	},
	{
		Title:       "Women's Cropped Puffer Jacket",
		Description: "The Women's Cropped Puffer Jacket features a uniquely cropped silhouette for the perfect, modern style while on the go during the cozy season ahead.",
		Price:       225,
		Stock:       85,
		Sizes:       []string{"XS", "S", "M"},
		Gender:      "women",
		Tags:        []string{"hoodie"},
		Images:      []string{"1740535-00-A_0_2000.jpg", "1740535-00-A_1.jpg"},
	},
	{
		Title:       "Unisex Cyberquad Cap",
		Description: "The Cyberquad Cap pairs a structured six panel design with a curved bill and an embroidered Cyberquad logo.",
		Price:       35,
		Stock:       12,
		Sizes:       []string{},
		Gender:      "unisex",
		Tags:        []string{"hats"},
		Images:      []string{"1743505-00-A_0_2000.jpg"},
	},
}
