package dataset

// Shared lists for synthetic clinic data generation.

const (
	Species      = "개"
	NeuterMarker = "중성화"
	Yes          = "예"
	No           = "아니오"

	MicrochipPrefix = "KR"
	DosageUnit      = "mg"

	TreatmentMedication = "약물처방"
	TreatmentExam       = "검사 실시"
)

var PetNames = []string{"뽀삐", "초코", "쿠키", "몽이", "루이", "코코", "두부", "콩이", "별이", "달이"}

var Breeds = []string{
	"말티즈", "푸들", "치와와", "시츄", "포메라니안",
	"요크셔테리어", "비글", "웰시코기", "골든리트리버", "리트리버",
}

var Genders = []string{"수컷", "암컷", "중성화 수컷", "중성화 암컷"}

var OwnerNames = []string{
	"김철수", "이영희", "박민수", "최지은", "정다은",
	"강호동", "유재석", "송지효", "하하", "전소민",
}

var VisitTypes = []string{"정기검진", "예약", "응급", "재진"}

var VisitStatuses = []string{"완료", "진료중", "예약"}

var Complaints = []string{
	"피부 가려움", "구토", "설사", "기침", "식욕부진",
	"무기력", "절뚝거림", "눈곱", "귀 냄새", "치석",
}

var Diagnoses = []string{
	"피부염", "위장염", "상기도감염", "외이염", "치주질환",
	"슬개골탈구", "알레르기", "정상", "경과관찰 필요",
}

var Veterinarians = []string{"김수의사", "이수의사", "박수의사"}

var DrugNames = []string{
	"항생제 (Amoxicillin)", "소염제 (Carprofen)", "진통제 (Tramadol)",
	"항히스타민제", "스테로이드", "심장약", "위장약",
}

var Frequencies = []string{"BID (1일 2회)", "TID (1일 3회)", "QD (1일 1회)", "PRN (필요시)"}

var MedicationCategories = []string{"항생제", "소염제", "진통제", "기타"}

// ptr is a helper to create pointers to float64 literals
func ptr(f float64) *float64 {
	return &f
}

// ExamCatalog returns the exam master list. A fresh slice is returned on
// every call so callers may not alias the shared definitions.
func ExamCatalog() []ExamDefinition {
	return []ExamDefinition{
		// ===== CBC =====
		{Code: "CBC001", Name: "WBC (백혈구)", Category: "CBC", Kind: ExamGeneral, Unit: "10^3/μL", Min: ptr(6.0), Max: ptr(17.0), BodyRegion: "blood"},
		{Code: "CBC002", Name: "RBC (적혈구)", Category: "CBC", Kind: ExamGeneral, Unit: "10^6/μL", Min: ptr(5.5), Max: ptr(8.5), BodyRegion: "blood"},
		{Code: "CBC003", Name: "HGB (헤모글로빈)", Category: "CBC", Kind: ExamGeneral, Unit: "g/dL", Min: ptr(12.0), Max: ptr(18.0), BodyRegion: "blood"},
		{Code: "CBC004", Name: "HCT (헤마토크릿)", Category: "CBC", Kind: ExamGeneral, Unit: "%", Min: ptr(37.0), Max: ptr(55.0), BodyRegion: "blood"},
		{Code: "CBC005", Name: "PLT (혈소판)", Category: "CBC", Kind: ExamGeneral, Unit: "10^3/μL", Min: ptr(200.0), Max: ptr(500.0), BodyRegion: "blood"},

		// ===== Liver =====
		{Code: "LIVER001", Name: "ALT (간효소)", Category: "간기능", Kind: ExamGeneral, Unit: "U/L", Min: ptr(10.0), Max: ptr(100.0), BodyRegion: "liver"},
		{Code: "LIVER002", Name: "AST", Category: "간기능", Kind: ExamGeneral, Unit: "U/L", Min: ptr(15.0), Max: ptr(66.0), BodyRegion: "liver"},
		{Code: "LIVER003", Name: "ALP (알칼리포스파타제)", Category: "간기능", Kind: ExamGeneral, Unit: "U/L", Min: ptr(23.0), Max: ptr(212.0), BodyRegion: "liver"},

		// ===== Kidney =====
		{Code: "KIDNEY001", Name: "BUN (혈중요소질소)", Category: "신장기능", Kind: ExamGeneral, Unit: "mg/dL", Min: ptr(7.0), Max: ptr(27.0), BodyRegion: "kidney"},
		{Code: "KIDNEY002", Name: "CREA (크레아티닌)", Category: "신장기능", Kind: ExamGeneral, Unit: "mg/dL", Min: ptr(0.5), Max: ptr(1.8), BodyRegion: "kidney"},

		// ===== Electrolytes =====
		{Code: "ELEC001", Name: "Na (나트륨)", Category: "전해질", Kind: ExamGeneral, Unit: "mEq/L", Min: ptr(144.0), Max: ptr(160.0), BodyRegion: "blood"},
		{Code: "ELEC002", Name: "K (칼륨)", Category: "전해질", Kind: ExamGeneral, Unit: "mEq/L", Min: ptr(3.5), Max: ptr(5.8), BodyRegion: "blood"},
		{Code: "ELEC003", Name: "Cl (염소)", Category: "전해질", Kind: ExamGeneral, Unit: "mEq/L", Min: ptr(109.0), Max: ptr(122.0), BodyRegion: "blood"},

		// ===== Imaging (no normal range) =====
		{Code: "XRAY001", Name: "흉부 X-ray", Category: "영상", Kind: ExamImaging, BodyRegion: "chest"},
		{Code: "XRAY002", Name: "복부 X-ray", Category: "영상", Kind: ExamImaging, BodyRegion: "abdomen"},
	}
}

// QuestionCatalog returns the questionnaire templates grouped by body region.
func QuestionCatalog() []QuestionTemplate {
	return []QuestionTemplate{
		{Category: "피부", Question: "피부에 발진이나 붉은 반점이 있나요?", Kind: "yes_no", BodyRegion: "skin", Order: 1},
		{Category: "피부", Question: "가려움증으로 긁는 행동을 자주 하나요?", Kind: "yes_no", BodyRegion: "skin", Order: 2},
		{Category: "소화기", Question: "구토 증상이 있나요?", Kind: "yes_no", BodyRegion: "digestive", Order: 1},
		{Category: "소화기", Question: "설사를 하나요?", Kind: "yes_no", BodyRegion: "digestive", Order: 2},
		{Category: "소화기", Question: "식욕은 어떤가요?", Kind: "multiple_choice", BodyRegion: "digestive", Order: 3},
		{Category: "호흡기", Question: "기침을 하나요?", Kind: "yes_no", BodyRegion: "respiratory", Order: 1},
		{Category: "호흡기", Question: "호흡이 빠르거나 힘들어 보이나요?", Kind: "yes_no", BodyRegion: "respiratory", Order: 2},
		{Category: "신경", Question: "걸음걸이가 이상하거나 절뚝거리나요?", Kind: "yes_no", BodyRegion: "nervous", Order: 1},
		{Category: "신경", Question: "발작 증상이 있었나요?", Kind: "yes_no", BodyRegion: "nervous", Order: 2},
		{Category: "비뇨기", Question: "소변 색깔이 이상한가요?", Kind: "yes_no", BodyRegion: "urinary", Order: 1},
		{Category: "비뇨기", Question: "배뇨 시 통증이 있어 보이나요?", Kind: "yes_no", BodyRegion: "urinary", Order: 2},
		{Category: "근골격", Question: "관절 부위를 만지면 아파하나요?", Kind: "yes_no", BodyRegion: "musculoskeletal", Order: 1},
		{Category: "근골격", Question: "계단 오르내리기를 힘들어하나요?", Kind: "yes_no", BodyRegion: "musculoskeletal", Order: 2},
	}
}
