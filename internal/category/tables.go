package category

import "math"

type ngramEntry struct {
	phrase   string
	category Category
	weight   float64
}

// ngrams are phrases that identify a category on their own. A match of
// weight 0.9 or more decides the prediction without keyword scoring.
var ngrams = []ngramEntry{
	{"grab food", Food, 1.0},
	{"grabfood", Food, 1.0},
	{"shopee food", Food, 1.0},
	{"shopeefood", Food, 1.0},
	{"bee food", Food, 1.0},
	{"beefood", Food, 1.0},
	{"go food", Food, 1.0},
	{"gofood", Food, 1.0},
	{"now food", Food, 1.0},
	{"ship đồ ăn", Food, 1.0},
	{"order đồ ăn", Food, 1.0},
	{"đặt đồ ăn", Food, 1.0},
	{"ăn sáng", Food, 0.95},
	{"ăn trưa", Food, 0.95},
	{"ăn tối", Food, 0.95},
	{"ăn vặt", Food, 0.95},
	{"ăn uống", Food, 0.95},
	{"đi ăn", Food, 0.95},
	{"đi cafe", Food, 0.9},
	{"đi cà phê", Food, 0.9},
	{"uống cafe", Food, 0.9},
	{"uống cà phê", Food, 0.9},
	{"trà sữa", Food, 0.95},
	{"bữa ăn", Food, 0.9},
	{"gọi món", Food, 0.9},
	{"mua đồ ăn", Food, 0.95},

	{"grab car", Transportation, 1.0},
	{"grabcar", Transportation, 1.0},
	{"grab bike", Transportation, 1.0},
	{"grabbike", Transportation, 1.0},
	{"be car", Transportation, 1.0},
	{"be bike", Transportation, 1.0},
	{"xanh sm", Transportation, 1.0},
	{"đổ xăng", Transportation, 1.0},
	{"tiền xăng", Transportation, 1.0},
	{"gửi xe", Transportation, 0.95},
	{"đậu xe", Transportation, 0.95},
	{"phí gửi xe", Transportation, 1.0},
	{"tiền gửi xe", Transportation, 1.0},
	{"vé xe", Transportation, 0.95},
	{"vé tàu", Transportation, 0.9},
	{"đi xe", Transportation, 0.85},
	{"bảo dưỡng xe", Transportation, 1.0},
	{"sửa xe", Transportation, 1.0},
	{"rửa xe", Transportation, 1.0},
	{"bảo hiểm xe", Transportation, 1.0},
	{"phí cầu đường", Transportation, 1.0},
	{"phí cao tốc", Transportation, 1.0},

	{"vé máy bay", Travel, 1.0},
	{"đặt phòng", Travel, 0.95},
	{"book phòng", Travel, 0.95},
	{"tiền khách sạn", Travel, 1.0},
	{"tiền hotel", Travel, 1.0},
	{"đi du lịch", Travel, 1.0},
	{"tour du lịch", Travel, 1.0},
	{"vietnam airlines", Travel, 1.0},
	{"viet jet", Travel, 1.0},
	{"vietjet", Travel, 1.0},
	{"bamboo airways", Travel, 1.0},
	{"pacific airlines", Travel, 1.0},

	{"mua quần áo", Shopping, 1.0},
	{"mua giày", Shopping, 1.0},
	{"mua áo", Shopping, 0.95},
	{"mua váy", Shopping, 1.0},
	{"ăn mặc", Shopping, 1.0},
	{"thời trang", Shopping, 1.0},
	{"mỹ phẩm", Shopping, 1.0},
	{"nước hoa", Shopping, 1.0},

	{"mua điện thoại", Houseware, 1.0},
	{"mua laptop", Houseware, 1.0},
	{"mua máy tính", Houseware, 1.0},
	{"điện máy xanh", Houseware, 1.0},
	{"thế giới di động", Houseware, 1.0},
	{"fpt shop", Houseware, 1.0},
	{"nguyễn kim", Houseware, 1.0},
	{"máy giặt", Houseware, 1.0},
	{"máy lạnh", Houseware, 1.0},
	{"điều hòa", Houseware, 1.0},
	{"tủ lạnh", Houseware, 1.0},
	{"nồi chiên", Houseware, 1.0},
	{"air fryer", Houseware, 1.0},
	{"máy hút bụi", Houseware, 1.0},

	{"tiền nhà", Home, 1.0},
	{"tiền trọ", Home, 1.0},
	{"thuê nhà", Home, 1.0},
	{"thuê phòng", Home, 1.0},
	{"sửa nhà", Home, 1.0},
	{"mua nội thất", Home, 1.0},
	{"đồ nội thất", Home, 1.0},
	{"thợ sửa", Home, 0.9},
	{"thợ điện", Home, 1.0},
	{"thợ nước", Home, 1.0},
	{"dọn nhà", Home, 0.95},
	{"giúp việc", Home, 1.0},

	{"tiền điện", Utilities, 1.0},
	{"tiền nước", Utilities, 1.0},
	{"tiền mạng", Utilities, 1.0},
	{"tiền internet", Utilities, 1.0},
	{"tiền wifi", Utilities, 1.0},
	{"hóa đơn điện", Utilities, 1.0},
	{"hóa đơn nước", Utilities, 1.0},
	{"cước điện thoại", Utilities, 1.0},
	{"nạp điện thoại", Utilities, 1.0},
	{"nạp tiền điện thoại", Utilities, 1.0},
	{"gói cước", Utilities, 0.95},
	{"phí chung cư", Utilities, 1.0},
	{"phí quản lý", Utilities, 0.9},

	{"khám bệnh", Health, 1.0},
	{"khám tổng quát", Health, 1.0},
	{"đi khám", Health, 0.95},
	{"mua thuốc", Health, 1.0},
	{"tiền thuốc", Health, 1.0},
	{"nhà thuốc", Health, 1.0},
	{"bệnh viện", Health, 1.0},
	{"phòng khám", Health, 1.0},
	{"nha khoa", Health, 1.0},
	{"làm răng", Health, 1.0},
	{"chữa răng", Health, 1.0},
	{"tiêm vaccine", Health, 1.0},
	{"chích ngừa", Health, 1.0},
	{"xét nghiệm", Health, 1.0},
	{"bảo hiểm y tế", Health, 1.0},

	{"học phí", Education, 1.0},
	{"tiền học", Education, 1.0},
	{"đóng học", Education, 1.0},
	{"khóa học", Education, 1.0},
	{"mua sách", Education, 0.95},
	{"tiền sách", Education, 0.95},
	{"gia sư", Education, 1.0},
	{"học tiếng anh", Education, 1.0},
	{"học ngoại ngữ", Education, 1.0},
	{"thi ielts", Education, 1.0},
	{"thi toeic", Education, 1.0},
	{"luyện thi", Education, 1.0},

	{"xem phim", Entertainment, 1.0},
	{"đi xem phim", Entertainment, 1.0},
	{"vé phim", Entertainment, 1.0},
	{"vé cgv", Entertainment, 1.0},
	{"đi karaoke", Entertainment, 1.0},
	{"hát karaoke", Entertainment, 1.0},
	{"chơi game", Entertainment, 1.0},
	{"nạp game", Entertainment, 1.0},
	{"vé concert", Entertainment, 1.0},
	{"đi spa", Entertainment, 1.0},
	{"đi massage", Entertainment, 1.0},

	{"cắt tóc", Personal, 1.0},
	{"làm tóc", Personal, 1.0},
	{"làm nail", Personal, 1.0},
	{"làm móng", Personal, 1.0},
	{"đi gym", Personal, 1.0},
	{"tập gym", Personal, 1.0},
	{"phí gym", Personal, 1.0},
	{"tập yoga", Personal, 1.0},
	{"mua quà", Personal, 0.95},
	{"quà sinh nhật", Personal, 1.0},
	{"quà tặng", Personal, 0.95},

	{"tiền con", Family, 0.95},
	{"cho con", Family, 0.9},
	{"mua cho con", Family, 1.0},
	{"tiền bỉm", Family, 1.0},
	{"mua bỉm", Family, 1.0},
	{"mua tã", Family, 1.0},
	{"sữa bột", Family, 1.0},
	{"mua sữa cho bé", Family, 1.0},
	{"đồ chơi", Family, 0.9},
	{"biếu bố mẹ", Family, 1.0},
	{"cho bố mẹ", Family, 0.95},
	{"tiền chu cấp", Family, 1.0},
	{"tiền hiếu hỉ", Family, 1.0},
	{"đám cưới", Family, 1.0},
	{"đám giỗ", Family, 1.0},

	{"mua cổ phiếu", Investment, 1.0},
	{"bán cổ phiếu", Investment, 1.0},
	{"đầu tư", Investment, 1.0},
	{"chứng khoán", Investment, 1.0},
	{"gửi tiết kiệm", Investment, 1.0},
	{"tiền tiết kiệm", Investment, 1.0},
	{"mua vàng", Investment, 1.0},
	{"mua bitcoin", Investment, 1.0},
	{"mua crypto", Investment, 1.0},
	{"nạp binance", Investment, 1.0},

	{"quyên góp", Donation, 1.0},
	{"ủng hộ", Donation, 0.95},
	{"cứu trợ", Donation, 1.0},
	{"tặng cho quỹ", Donation, 1.0},
	{"cho quỹ", Donation, 0.95},
	{"quỹ từ thiện", Donation, 1.0},
	{"quỹ vì trẻ em", Donation, 1.0},
	{"quỹ trẻ em", Donation, 1.0},
	{"quỹ hỗ trợ", Donation, 1.0},
	{"đóng góp", Donation, 0.95},
	{"từ thiện", Charity, 1.0},
	{"thiện nguyện", Charity, 1.0},
	{"giúp đỡ người nghèo", Charity, 1.0},
	{"vì trẻ em", Charity, 0.95},
	{"vì người nghèo", Charity, 0.95},

	{"nhận lương", Income, 1.0},
	{"tiền lương", Income, 1.0},
	{"lương tháng", Income, 1.0},
	{"tiền thưởng", Income, 1.0},
	{"nhận thưởng", Income, 1.0},
	{"hoàn tiền", Income, 1.0},
	{"được hoàn", Income, 0.95},
	{"nhận tiền", Income, 0.9},
	{"chuyển khoản đến", Income, 0.95},
	{"nhận chuyển khoản", Income, 0.95},
}

// keywordWeights override the default weight of 1 for specific keywords.
// Brand names are boosted; generic verbs are damped.
var keywordWeights = map[string]float64{
	"grabfood":         1.5,
	"shopeefood":       1.5,
	"grab food":        1.5,
	"shopee food":      1.5,
	"grabcar":          1.5,
	"grabbike":         1.5,
	"vietjet":          1.5,
	"vietnam airlines": 1.5,
	"netflix":          1.3,
	"spotify":          1.3,
	"lazada":           1.3,
	"shopee":           1.2,
	"tiki":             1.3,
	"cgv":              1.4,
	"lotte":            1.2,
	"vinmec":           1.5,
	"pharmacity":       1.4,
	"long châu":        1.4,
	"udemy":            1.4,
	"coursera":         1.4,
	"binance":          1.5,
	"bitcoin":          1.5,
	"ethereum":         1.5,

	"phở":       1.2,
	"lẩu":       1.2,
	"trà sữa":   1.3,
	"cafe":      1.1,
	"cà phê":    1.1,
	"taxi":      1.2,
	"xăng":      1.3,
	"thuốc":     1.2,
	"bệnh viện": 1.3,
	"học phí":   1.3,
	"tiền nhà":  1.4,
	"tiền điện": 1.4,
	"tiền nước": 1.4,

	"mua":  0.5,
	"tiền": 0.4,
	"trả":  0.4,
	"đi":   0.3,
	"ăn":   0.7,
	"uống": 0.6,
	"làm":  0.4,
}

type negativeEntry struct {
	phrase   string
	excludes []Category
}

// negatives remove categories that a phrase only looks like.
var negatives = []negativeEntry{
	{"ăn mặc", []Category{Food}},
	{"grab food", []Category{Transportation}},
	{"grabfood", []Category{Transportation}},
	{"shopee food", []Category{Transportation}},
	{"shopeefood", []Category{Transportation}},
	{"xe đẩy", []Category{Transportation}},
	{"xe đồ chơi", []Category{Transportation}},
	{"bánh xe", []Category{Food}},
	{"sữa rửa mặt", []Category{Family}},
	{"sữa tắm", []Category{Family}},
	{"cước điện thoại", []Category{Houseware}},
	{"nạp điện thoại", []Category{Houseware}},
}

// amountTier applies when min <= amount < max, in major units (VND).
type amountTier struct {
	min, max float64
	likely   []Category
	unlikely []Category
	boost    float64
}

var amountTiers = []amountTier{
	{
		min:      0,
		max:      50_000,
		likely:   []Category{Food, Transportation},
		unlikely: []Category{Home, Investment, Travel, Houseware},
		boost:    1.1,
	},
	{
		min:      50_000,
		max:      200_000,
		likely:   []Category{Food, Transportation, Personal, Entertainment},
		unlikely: []Category{Home, Investment, Travel},
		boost:    1.05,
	},
	{
		min:    200_000,
		max:    1_000_000,
		likely: []Category{Utilities, Shopping, Health, Education},
		boost:  1.05,
	},
	{
		min:      1_000_000,
		max:      5_000_000,
		likely:   []Category{Home, Education, Travel, Houseware, Health},
		unlikely: []Category{Food},
		boost:    1.1,
	},
	{
		min:      5_000_000,
		max:      math.Inf(1),
		likely:   []Category{Home, Investment, Travel, Houseware},
		unlikely: []Category{Food, Transportation},
		boost:    1.15,
	},
}

// tokenSubs rewrite whole tokens: teencode, common typos and unaccented
// spellings of frequent words.
var tokenSubs = map[string]string{
	"k":       "không",
	"ko":      "không",
	"k0":      "không",
	"dc":      "được",
	"đc":      "được",
	"vs":      "với",
	"j":       "gì",
	"z":       "vậy",
	"r":       "rồi",
	"m":       "mình",
	"b":       "bạn",
	"a":       "anh",
	"e":       "em",
	"cf":      "cafe",
	"coffe":   "coffee",
	"cofee":   "coffee",
	"grap":    "grab",
	"grabs":   "grab",
	"shoppee": "shopee",
	"lazda":   "lazada",
	"netfix":  "netflix",
	"spotifi": "spotify",
	"tien":    "tiền",
	"an":      "ăn",
	"uong":    "uống",
	"di":      "đi",
}

// phraseSubs rewrite multi-word spellings. Applied in order.
var phraseSubs = [][2]string{
	{"cà fê", "cà phê"},
	{"hoá đơn", "hóa đơn"},
	{"điện thoai", "điện thoại"},
	{"xe om", "xe ôm"},
	{"ca phe", "cà phê"},
	{"tra sua", "trà sữa"},
}
