// Package persona maps dominant spending categories onto the persona
// profiles shown to the user.
package persona

import "github.com/spendy-app/spendy/internal/model"

// Profile describes one spending persona: display name, icon generation
// inputs and the copy shown on the result page.
type Profile struct {
	Name        string
	IconPrompt  string
	Color       string
	Description string
	Comment     string
	Tips        []string
}

var profiles = map[string]Profile{
	string(model.CategoryFood): {
		Name:        "미식가",
		IconPrompt:  "A fork and knife crossed",
		Color:       "#FFB800",
		Description: "맛있는 음식을 즐기는 데\n지출이 많으시네요",
		Comment:     "다양한 맛을 탐험하는 당신은 진정한 미식가입니다.",
		Tips: []string{
			"일주일치 식단을 미리 계획하여 충동적인 외식과 배달을 줄여보세요.",
			"편의점이나 카페 대신 텀블러와 도시락을 이용하면 큰 금액을 아낄 수 있어요.",
		},
	},
	string(model.CategoryShopping): {
		Name:        "쇼핑 러버",
		IconPrompt:  "A shopping bag with a small heart on it",
		Color:       "#FF6482",
		Description: "쇼핑을 통해 삶의 만족도를\n높이시는군요",
		Comment:     "새로운 것을 찾는 즐거움을 아는 당신, 멋져요!",
		Tips: []string{
			"장바구니에 담아두고 24시간 뒤에 다시 결제 여부를 고민해보세요.",
			"계절이 바뀔 때만 옷을 사는 등 나만의 쇼핑 원칙을 정해보세요.",
		},
	},
	string(model.CategoryHousing): {
		Name:        "홈 메이커",
		IconPrompt:  "A simple, modern house icon",
		Color:       "#00C471",
		Description: "주거 관련 지출이 소비에서\n큰 비중을 차지하네요",
		Comment:     "편안한 공간을 만드는 데 투자하는 현명한 선택입니다.",
		Tips: []string{
			"사용하지 않는 플러그를 뽑아 대기 전력을 차단하여 전기세를 절약하세요.",
			"통신비 제휴 할인이나 알뜰폰 요금제를 활용해 고정 지출을 줄여보세요.",
		},
	},
	string(model.CategoryTransport): {
		Name:        "액티브 무버",
		IconPrompt:  "A modern bus or subway icon",
		Color:       "#3182F6",
		Description: "이동이 잦거나 교통 관련\n지출이 많은 편이시네요",
		Comment:     "세상을 누비는 활동적인 라이프스타일!",
		Tips: []string{
			"알뜰교통카드나 대중교통 정기권을 사용하여 교통비를 할인받으세요.",
			"가까운 거리는 걷거나 자전거를 이용해 건강과 지갑을 모두 챙기세요.",
		},
	},
	string(model.CategoryLeisure): {
		Name:        "라이프 엔조이어",
		IconPrompt:  "A movie ticket and a star",
		Color:       "#8B5CF6",
		Description: "다양한 문화 및 여가 활동에\n적극적으로 참여하시는군요",
		Comment:     "삶을 풍요롭게 만드는 멋진 취미생활을 하고 계세요.",
		Tips: []string{
			"매월 마지막 주 수요일 \"문화가 있는 날\"의 할인 혜택을 적극 활용하세요.",
			"구독형 서비스 중 자주 이용하지 않는 것은 과감히 해지하세요.",
		},
	},
	string(model.CategoryLiving): {
		Name:        "라이프 매니저",
		IconPrompt:  "A water droplet inside a leaf shape",
		Color:       "#14B8A6",
		Description: "필수적인 생활비 지출이\n상대적으로 높게 나타납니다",
		Comment:     "건강과 일상을 챙기는 책임감 있는 당신, 응원합니다.",
		Tips: []string{
			"생필품은 대용량으로 구매하거나 할인 행사 기간을 노려 비축해두세요.",
			"지역화폐를 사용하여 결제 시 할인이나 캐시백 혜택을 챙기세요.",
		},
	},
	string(model.CategoryUnknown): {
		Name:        "미스터리 소비자",
		IconPrompt:  "A magnifying glass over a question mark",
		Color:       "#A0AEC0",
		Description: "분류하기 어려운 소비가\n많이 발견되었습니다",
		Comment:     "독특한 소비 패턴을 가진 흥미로운 당신이네요.",
		Tips: []string{
			"지출 내역을 꼼꼼히 기록하여 어디로 돈이 새는지 확인해보세요.",
			"현금보다는 카드를 사용하여 지출 내역을 자동으로 남기는 것이 좋아요.",
		},
	},
	model.PersonaRusher: {
		Name:        "생각없는 직진가",
		IconPrompt:  "A cartoon rocket ship about to crash into a planet",
		Color:       "#F44336",
		Description: "잘못된 데이터를 포함하여\n분석을 요청하셨습니다",
		Comment:     "잘못된 데이터는 인식할 수 없어요. 정확한 분석을 위해 올바른 형식의 데이터를 업로드해주세요!",
		Tips: []string{
			"영수증을 챙기는 습관부터 시작해보세요!",
			"정확한 기록이 절약의 첫걸음입니다.",
		},
	},
}

// Lookup returns the profile for a persona label. Unrecognized labels fall
// back to the Unknown profile so the result page always has something to
// render.
func Lookup(label string) Profile {
	if p, ok := profiles[label]; ok {
		return p
	}
	return profiles[string(model.CategoryUnknown)]
}
