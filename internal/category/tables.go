package category

import "github.com/spendy-app/spendy/internal/model"

// mapping binds one lowercase keyword to a category. Tables are ordered
// slices rather than maps: the first entry whose keyword is contained in
// the item wins, and that ordering is a tested contract. A short keyword
// placed early can and does shadow longer ones later in the table.
type mapping struct {
	keyword  string
	category model.Category
}

// itemMappings is the fine-grained table of specific vendors and items,
// scanned before the coarse category-name table.
var itemMappings = []mapping{
	// 식비
	{"우유", model.CategoryFood},
	{"빵", model.CategoryFood},
	{"치킨", model.CategoryFood},
	{"과자", model.CategoryFood},
	{"라면", model.CategoryFood},
	{"커피", model.CategoryFood},
	{"점심", model.CategoryFood},
	{"저녁", model.CategoryFood},
	{"피자", model.CategoryFood},
	{"햄버거", model.CategoryFood},
	{"스타벅스", model.CategoryFood},
	{"배달의민족", model.CategoryFood},
	{"요기요", model.CategoryFood},
	{"마켓컬리", model.CategoryFood},
	{"milk", model.CategoryFood},
	{"bread", model.CategoryFood},
	{"chicken", model.CategoryFood},
	{"snacks", model.CategoryFood},
	{"coffee", model.CategoryFood},
	{"lunch", model.CategoryFood},
	{"dinner", model.CategoryFood},
	{"pizza", model.CategoryFood},
	// 주거
	{"월세", model.CategoryHousing},
	{"관리비", model.CategoryHousing},
	{"전기세", model.CategoryHousing},
	{"수도세", model.CategoryHousing},
	{"가스비", model.CategoryHousing},
	{"인터넷", model.CategoryHousing},
	{"통신비", model.CategoryHousing},
	{"kt", model.CategoryHousing},
	{"skt", model.CategoryHousing},
	{"lgu+", model.CategoryHousing},
	{"rent", model.CategoryHousing},
	{"electric bill", model.CategoryHousing},
	{"water bill", model.CategoryHousing},
	{"gas bill", model.CategoryHousing},
	{"internet bill", model.CategoryHousing},
	// 교통비
	{"택시", model.CategoryTransport},
	{"버스", model.CategoryTransport},
	{"지하철", model.CategoryTransport},
	{"주차", model.CategoryTransport},
	{"기름", model.CategoryTransport},
	{"카카오택시", model.CategoryTransport},
	{"티머니", model.CategoryTransport},
	{"하이패스", model.CategoryTransport},
	{"srt", model.CategoryTransport},
	{"taxi", model.CategoryTransport},
	{"bus", model.CategoryTransport},
	{"subway", model.CategoryTransport},
	{"parking", model.CategoryTransport},
	{"gas", model.CategoryTransport},
	// 쇼핑
	{"옷", model.CategoryShopping},
	{"신발", model.CategoryShopping},
	{"가방", model.CategoryShopping},
	{"화장품", model.CategoryShopping},
	{"핸드폰", model.CategoryShopping},
	{"올리브영", model.CategoryShopping},
	{"무신사", model.CategoryShopping},
	{"쿠팡", model.CategoryShopping},
	{"네이버쇼핑", model.CategoryShopping},
	{"이마트", model.CategoryShopping},
	{"홈플러스", model.CategoryShopping},
	{"다이소", model.CategoryShopping},
	{"cu", model.CategoryShopping},
	{"gs25", model.CategoryShopping},
	{"세븐일레븐", model.CategoryShopping},
	{"clothes", model.CategoryShopping},
	{"shoes", model.CategoryShopping},
	{"cosmetics", model.CategoryShopping},
	{"coupang", model.CategoryShopping},
	{"book", model.CategoryShopping},
	// 문화/여가
	{"영화", model.CategoryLeisure},
	{"헬스", model.CategoryLeisure},
	{"노래방", model.CategoryLeisure},
	{"pc방", model.CategoryLeisure},
	{"cgv", model.CategoryLeisure},
	{"메가박스", model.CategoryLeisure},
	{"넷플릭스", model.CategoryLeisure},
	{"유튜브", model.CategoryLeisure},
	{"멜론", model.CategoryLeisure},
	{"교보문고", model.CategoryLeisure},
	{"movie", model.CategoryLeisure},
	{"gym", model.CategoryLeisure},
	{"netflix", model.CategoryLeisure},
	{"youtube", model.CategoryLeisure},
	// 생활비
	{"병원", model.CategoryLiving},
	{"약", model.CategoryLiving},
	{"샴푸", model.CategoryLiving},
	{"미용실", model.CategoryLiving},
	{"hospital", model.CategoryLiving},
	{"pharmacy", model.CategoryLiving},
	{"shampoo", model.CategoryLiving},
}

// categoryMappings is the coarse table of generic category words, consulted
// only when nothing in itemMappings matched.
var categoryMappings = []mapping{
	// 식비
	{"음식", model.CategoryFood},
	{"식사", model.CategoryFood},
	{"식비", model.CategoryFood},
	{"식료품", model.CategoryFood},
	{"카페", model.CategoryFood},
	{"배달", model.CategoryFood},
	{"디저트", model.CategoryFood},
	{"간식", model.CategoryFood},
	{"groceries", model.CategoryFood},
	{"food", model.CategoryFood},
	{"cafe", model.CategoryFood},
	{"restaurant", model.CategoryFood},
	// 주거
	{"주거", model.CategoryHousing},
	{"월세", model.CategoryHousing},
	{"관리비", model.CategoryHousing},
	{"전기", model.CategoryHousing},
	{"수도", model.CategoryHousing},
	{"가스", model.CategoryHousing},
	{"인터넷", model.CategoryHousing},
	{"통신", model.CategoryHousing},
	{"housing", model.CategoryHousing},
	{"utilities", model.CategoryHousing},
	{"rent", model.CategoryHousing},
	// 교통비
	{"교통", model.CategoryTransport},
	{"교통비", model.CategoryTransport},
	{"택시", model.CategoryTransport},
	{"버스", model.CategoryTransport},
	{"지하철", model.CategoryTransport},
	{"주차", model.CategoryTransport},
	{"기름", model.CategoryTransport},
	{"항공", model.CategoryTransport},
	{"ktx", model.CategoryTransport},
	{"transportation", model.CategoryTransport},
	{"travel", model.CategoryTransport},
	{"taxi", model.CategoryTransport},
	{"bus", model.CategoryTransport},
	{"subway", model.CategoryTransport},
	// 쇼핑
	{"쇼핑", model.CategoryShopping},
	{"의류", model.CategoryShopping},
	{"화장품", model.CategoryShopping},
	{"전자제품", model.CategoryShopping},
	{"선물", model.CategoryShopping},
	{"가구", model.CategoryShopping},
	{"인테리어", model.CategoryShopping},
	{"편의점", model.CategoryShopping},
	{"마트", model.CategoryShopping},
	{"shopping", model.CategoryShopping},
	{"gifts", model.CategoryShopping},
	{"clothes", model.CategoryShopping},
	{"cosmetics", model.CategoryShopping},
	// 문화/여가
	{"문화", model.CategoryLeisure},
	{"여가", model.CategoryLeisure},
	{"운동", model.CategoryLeisure},
	{"헬스", model.CategoryLeisure},
	{"취미", model.CategoryLeisure},
	{"영화", model.CategoryLeisure},
	{"공연", model.CategoryLeisure},
	{"여행", model.CategoryLeisure},
	{"구독", model.CategoryLeisure},
	{"fitness", model.CategoryLeisure},
	{"hobbies", model.CategoryLeisure},
	{"culture", model.CategoryLeisure},
	{"leisure", model.CategoryLeisure},
	// 생활비
	{"생활", model.CategoryLiving},
	{"의료", model.CategoryLiving},
	{"병원", model.CategoryLiving},
	{"약국", model.CategoryLiving},
	{"생필품", model.CategoryLiving},
	{"미용", model.CategoryLiving},
	{"경조사", model.CategoryLiving},
	{"medical", model.CategoryLiving},
	{"dental", model.CategoryLiving},
	{"personal hygiene", model.CategoryLiving},
}
