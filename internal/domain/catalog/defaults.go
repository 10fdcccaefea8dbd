package catalog

// DefaultItems is the starter produce catalog loaded by cmd/seed.
// Codes are stable identifiers; ordering screens key quantities by them.
var DefaultItems = []Item{
	{Code: "VEG_TOMATO", NameEN: "Tomato", NameHI: "टमाटर", Category: CategoryVegetables, IsActive: true},
	{Code: "VEG_LEMON", NameEN: "Lemon", NameHI: "निम्बू", Category: CategoryVegetables, IsActive: true},
	{Code: "VEG_CUCUMBER", NameEN: "Cucumber", NameHI: "खीरा ककड़ी", Category: CategoryVegetables, IsActive: true},
	{Code: "VEG_CABBAGE", NameEN: "Cabbage", NameHI: "पत्ता गोभी", Category: CategoryVegetables, IsActive: true},
	{Code: "VEG_CAULIFLOWER", NameEN: "Cauliflower", NameHI: "फूल गोभी", Category: CategoryVegetables, IsActive: true},
	{Code: "VEG_PEAS", NameEN: "Peas", NameHI: "मटरफली", Category: CategoryVegetables, IsActive: true},
	{Code: "VEG_BOTTLE_GOURD", NameEN: "Bottle Gourd", NameHI: "लौकी", Category: CategoryVegetables, IsActive: true},
	{Code: "VEG_BRINJAL", NameEN: "Brinjal", NameHI: "बैगन", Category: CategoryVegetables, IsActive: true},
	{Code: "VEG_GREEN_CHILLI", NameEN: "Green Chilli", NameHI: "हरी मिर्ची", Category: CategoryVegetables, IsActive: true},
	{Code: "VEG_GINGER", NameEN: "Ginger", NameHI: "अदरक", Category: CategoryVegetables, IsActive: true},
	{Code: "VEG_LADYFINGER", NameEN: "Ladyfinger", NameHI: "भिण्डी", Category: CategoryVegetables, IsActive: true},
	{Code: "VEG_RIDGE_GOURD", NameEN: "Ridge Gourd", NameHI: "तरोई", Category: CategoryVegetables, IsActive: true},
	{Code: "VEG_BITTER_GOURD", NameEN: "Bitter Gourd", NameHI: "करेला", Category: CategoryVegetables, IsActive: true},
	{Code: "VEG_RADISH", NameEN: "Radish", NameHI: "मूली", Category: CategoryVegetables, IsActive: true},
	{Code: "HRB_CORIANDER", NameEN: "Coriander", NameHI: "धनिया", Category: CategoryHerbs, IsActive: true},
	{Code: "HRB_MINT", NameEN: "Mint", NameHI: "पुदीना", Category: CategoryHerbs, IsActive: true},
	{Code: "HRB_SPINACH", NameEN: "Spinach", NameHI: "पालक", Category: CategoryHerbs, IsActive: true},
	{Code: "HRB_FENUGREEK", NameEN: "Fenugreek", NameHI: "मेथी", Category: CategoryHerbs, IsActive: true},
	{Code: "HRB_CURRY_LEAVES", NameEN: "Curry Leaves", NameHI: "कड़ी पत्ता", Category: CategoryHerbs, IsActive: true},
	{Code: "FRT_KIWI", NameEN: "Kiwi", NameHI: "कीवी", Category: CategoryFruits, IsActive: true},
	{Code: "FRT_POMEGRANATE", NameEN: "Pomegranate", NameHI: "अनार", Category: CategoryFruits, IsActive: true},
	{Code: "FRT_PAPAYA", NameEN: "Papaya", NameHI: "पपीता", Category: CategoryFruits, IsActive: true},
	{Code: "FRT_BANANA", NameEN: "Banana", NameHI: "केला", Category: CategoryFruits, IsActive: true},
}
