package restaurant

// DefaultRestaurants is the built-in weekday pool used when no pool file is configured.
func DefaultRestaurants() []Restaurant {
	return []Restaurant{
		{ID: "id-1", Name: "鼎泰豐", Cuisine: Chinese, Price: 120, Distance: 150},
		{ID: "id-2", Name: "一蘭拉麵", Cuisine: Japanese, Price: 100, Distance: 150},
		{ID: "id-3", Name: "西提", Cuisine: Western, Price: 160, Distance: 250},
		{ID: "id-4", Name: "韓國郎", Cuisine: Korean, Price: 115, Distance: 150},
		{ID: "id-5", Name: "Sukiya", Cuisine: Japanese, Price: 100, Distance: 50},
		{ID: "id-6", Name: "王品", Cuisine: Western, Price: 120, Distance: 400},
		{ID: "id-7", Name: "瓦城", Cuisine: Thai, Price: 85, Distance: 110},
		{ID: "id-8", Name: "吉野家", Cuisine: Japanese, Price: 70, Distance: 310},
		{ID: "id-9", Name: "我家牛排", Cuisine: Western, Price: 105, Distance: 90},
		{ID: "id-10", Name: "小食泰", Cuisine: Thai, Price: 65, Distance: 850},
		{ID: "id-11", Name: "迴轉壽司", Cuisine: Japanese, Price: 70, Distance: 240},
		{ID: "id-12", Name: "夏慕尼", Cuisine: Western, Price: 130, Distance: 150},
		{ID: "id-13", Name: "打拋專賣", Cuisine: Thai, Price: 150, Distance: 510},
		{ID: "id-14", Name: "日式燒肉", Cuisine: Japanese, Price: 125, Distance: 190},
		{ID: "id-15", Name: "義麵屋", Cuisine: Western, Price: 145, Distance: 380},
		{ID: "id-16", Name: "湄南小鎮", Cuisine: Thai, Price: 105, Distance: 110},
		{ID: "id-17", Name: "丼飯", Cuisine: Japanese, Price: 100, Distance: 10},
		{ID: "id-18", Name: "漢堡王", Cuisine: Western, Price: 110, Distance: 150},
		{ID: "id-19", Name: "熱炒100", Cuisine: Chinese, Price: 90, Distance: 290},
	}
}
