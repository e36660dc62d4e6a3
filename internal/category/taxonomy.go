package category

// Category is a spending or income category.
type Category string

const (
	Income         Category = "income"
	Food           Category = "food"
	Transportation Category = "transportation"
	Travel         Category = "travel"
	Entertainment  Category = "entertainment"
	Shopping       Category = "shopping"
	Houseware      Category = "houseware"
	Home           Category = "home"
	Utilities      Category = "utilities"
	Health         Category = "health"
	Education      Category = "education"
	Personal       Category = "personal"
	Family         Category = "family"
	Investment     Category = "investment"
	Donation       Category = "donation"
	Charity        Category = "charity"
	Other          Category = "other"
)

// Default is returned when nothing matches well enough.
const Default = Other

// All lists every category. Ties in scoring are broken by this order.
var All = []Category{
	Income, Food, Transportation, Travel, Entertainment, Shopping, Houseware,
	Home, Utilities, Health, Education, Personal, Family, Investment,
	Donation, Charity, Other,
}

// Valid reports whether c is a known category.
func Valid(c Category) bool {
	for _, known := range All {
		if known == c {
			return true
		}
	}
	return false
}

// keywords are matched as substrings of the normalized note. Multi-word
// entries are allowed.
var keywords = map[Category][]string{
	Income: {
		"lương", "thưởng", "thu nhập", "tiền lãi", "cổ tức", "nhận tiền",
		"trả lương", "được trả", "kiếm được", "tiền về", "hoàn tiền",
		"salary", "bonus", "income", "interest", "dividend", "receive",
		"earn", "payment received", "refund",
	},
	Food: {
		"ăn", "cơm", "phở", "bún", "bánh", "mì", "quán", "nhà hàng",
		"cafe", "cà phê", "coffee", "trà sữa", "trà đá", "buffet", "bữa ăn",
		"gọi món", "đồ ăn", "thức ăn", "grabfood", "shopeefood", "beefood",
		"gofood", "food", "lẩu", "nướng", "gà rán", "pizza", "burger",
		"sushi", "bia", "nước ngọt", "đi chợ", "highlands", "starbucks",
		"kfc", "lotteria", "jollibee", "coopmart", "vinmart", "circle k",
		"ministop", "gs25", "family mart",
	},
	Transportation: {
		"grab", "uber", "be", "taxi", "xe ôm", "xe buýt", "bus", "xăng",
		"dầu", "đổ xăng", "xe", "gửi xe", "đậu xe", "parking", "vé xe",
		"vé tàu", "tàu", "bảo dưỡng xe", "sửa xe", "rửa xe", "đi lại",
		"di chuyển", "grabcar", "grabbike", "be bike", "be car", "gojek",
		"xanh sm", "cầu đường", "cao tốc",
	},
	Travel: {
		"du lịch", "travel", "tour", "khách sạn", "hotel", "resort",
		"homestay", "vé máy bay", "máy bay", "flight", "sân bay", "airbnb",
		"agoda", "booking", "visa", "hộ chiếu", "vietjet",
		"vietnam airlines", "bamboo airways",
	},
	Entertainment: {
		"vui chơi", "giải trí", "xem phim", "cinema", "rạp", "cgv", "lotte",
		"galaxy", "game", "netflix", "spotify", "youtube premium",
		"karaoke", "bar", "club", "vé", "ticket", "concert", "sự kiện",
		"event", "show", "biểu diễn", "spa", "massage", "bida", "bowling",
	},
	Shopping: {
		"mua", "shopping", "quần áo", "quần", "giày", "dép", "áo", "váy",
		"đồ", "thời trang", "fashion", "phụ kiện", "túi", "balo", "ví",
		"mỹ phẩm", "cosmetic", "nước hoa", "perfume", "son", "lipstick",
		"lazada", "shopee", "tiki", "sendo", "zalora", "uniqlo", "zara",
		"adidas", "nike", "converse", "tạp hóa",
	},
	Houseware: {
		"điện thoại", "laptop", "macbook", "iphone", "samsung", "máy tính",
		"điện tử", "electronics", "thegioididong", "fpt shop", "điện máy",
		"tivi", "máy giặt", "tủ lạnh", "máy lạnh", "điều hòa", "nồi",
		"chảo", "quạt", "đèn", "bát đĩa", "gia dụng",
	},
	Home: {
		"nhà", "house", "rent", "thuê nhà", "tiền nhà", "tiền trọ",
		"phòng trọ", "apartment", "chung cư", "căn hộ", "sửa chữa",
		"repair", "bảo trì", "maintenance", "sơn", "nội thất", "furniture",
		"ikea", "nhà xinh", "tủ", "giường", "bàn", "ghế", "giúp việc",
	},
	Utilities: {
		"hóa đơn", "bill", "điện", "nước", "electricity", "water",
		"internet", "wifi", "cước", "phone bill", "viettel", "mobifone",
		"vinaphone", "vnpt", "cáp", "truyền hình", "phí dịch vụ",
		"phí quản lý", "gas", "rác",
	},
	Health: {
		"bác sĩ", "doctor", "khám", "bệnh viện", "hospital", "phòng khám",
		"clinic", "thuốc", "medicine", "nhà thuốc", "pharmacy",
		"pharmacity", "long châu", "an khang", "xét nghiệm", "chích ngừa",
		"vaccine", "tiêm", "răng", "nha khoa", "dental", "mắt", "kính",
		"glasses", "bảo hiểm y tế", "vinmec",
	},
	Education: {
		"học", "study", "học phí", "tuition", "trường", "school",
		"khóa học", "course", "lớp", "class", "giáo trình", "sách", "book",
		"udemy", "coursera", "edx", "skillshare", "ielts", "toeic",
		"tiếng anh", "english", "ngoại ngữ", "đào tạo", "training",
		"workshop", "seminar", "hội thảo",
	},
	Personal: {
		"cắt tóc", "haircut", "salon", "nail", "móng", "wax", "gym",
		"fitness", "yoga", "thể thao", "sport", "bơi", "quà", "gift",
		"tặng", "sinh nhật", "birthday", "kỷ niệm", "anniversary",
		"gội đầu", "skincare",
	},
	Family: {
		"con", "bố mẹ", "ba mẹ", "bố", "mẹ", "vợ", "chồng", "ông bà",
		"bỉm", "tã", "sữa bột", "đồ chơi", "hiếu hỉ", "đám cưới",
		"đám giỗ", "mừng cưới", "lì xì", "chu cấp", "gia đình",
	},
	Investment: {
		"đầu tư", "cổ phiếu", "chứng khoán", "tiết kiệm", "vàng",
		"bitcoin", "ethereum", "crypto", "binance", "trái phiếu",
		"quỹ đầu tư", "stock", "invest",
	},
	Donation: {
		"quyên góp", "ủng hộ", "cứu trợ", "đóng góp", "góp quỹ", "quỹ",
		"donate", "donation",
	},
	Charity: {
		"từ thiện", "thiện nguyện", "charity", "người nghèo", "vùng lũ",
		"bão lũ", "mồ côi",
	},
	Other: {
		"khác", "other", "misc", "miscellaneous",
	},
}
