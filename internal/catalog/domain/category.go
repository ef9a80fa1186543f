package domain

type Category string

const (
	CategoryBurgers    Category = "burgers"
	CategoryPizza      Category = "pizza"
	CategorySalads     Category = "salads"
	CategoryFruits     Category = "fruits"
	CategoryJuices     Category = "juices"
	CategoryVegetarian Category = "vegetarian"
	CategorySeafood    Category = "seafood"
	CategoryFastFood   Category = "fast_food"
	CategoryDesserts   Category = "desserts"
	CategorySnacks     Category = "snacks"
	CategoryAsian      Category = "asian"
	CategoryMexican    Category = "mexican"
	CategoryBeverages  Category = "beverages"
	CategoryBreakfast  Category = "breakfast"
	CategorySoups      Category = "soups"
)

// HealthyCategories drive dietary suggestions and recommendation scoring.
var HealthyCategories = map[Category]bool{
	CategorySalads:     true,
	CategoryFruits:     true,
	CategoryJuices:     true,
	CategoryVegetarian: true,
	CategorySeafood:    true,
}

var UnhealthyCategories = map[Category]bool{
	CategoryFastFood: true,
	CategoryDesserts: true,
	CategorySnacks:   true,
}
