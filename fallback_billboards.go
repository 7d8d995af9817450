package main

// fallbackBillboards is the fixed substitute collection served whenever the
// remote billboards table yields nothing or errors. It is the single source
// for the dataset that used to be copy-pasted into every screen.
var fallbackBillboards = []Billboard{
	{
		ID: "1",
		Title: LocalizedText{
			En: "Premium Digital Billboard - King Fahd Road",
			Ar: "لوحة إعلانية رقمية متميزة - طريق الملك فهد",
		},
		Location: LocalizedText{
			En: "King Fahd Road, Al Olaya District, Riyadh",
			Ar: "طريق الملك فهد، حي العليا، الرياض",
		},
		Description: LocalizedText{
			En: "High-visibility digital billboard located on the busiest road in Riyadh's business district.",
			Ar: "لوحة إعلانية رقمية عالية الوضوح تقع على أكثر الطرق ازدحامًا في منطقة الأعمال بالرياض.",
		},
		Type:        TypeDigital,
		Size:        "14x48 ft",
		Price:       5000,
		Status:      StatusAvailable,
		Impressions: "150,000+ daily",
		Images:      []string{stockBillboardImage},
		Features: LocalizedList{
			En: []string{"LED Display", "High Resolution", "24/7 Operation", "Real-time Content Updates"},
			Ar: []string{"شاشة LED", "دقة عالية", "تشغيل على مدار الساعة", "تحديثات محتوى في الوقت الفعلي"},
		},
		MapPosition: percentPosition(35, 45),
		Rating:      4.8,
		NearbyAttractions: LocalizedList{
			En: []string{"Kingdom Centre", "Al Faisaliah Tower", "Olaya Towers"},
			Ar: []string{"مركز المملكة", "برج الفيصلية", "أبراج العليا"},
		},
	},
	{
		ID: "2",
		Title: LocalizedText{
			En: "Rooftop Static Billboard - Tahlia Street",
			Ar: "لوحة إعلانية ثابتة على السطح - شارع التحلية",
		},
		Location: LocalizedText{
			En: "Tahlia Street, Al Sulaimaniyah, Riyadh",
			Ar: "شارع التحلية، السليمانية، الرياض",
		},
		Description: LocalizedText{
			En: "Large static billboard overlooking the popular shopping and dining district of Tahlia Street.",
			Ar: "لوحة إعلانية ثابتة كبيرة تطل على منطقة التسوق والمطاعم الشهيرة في شارع التحلية.",
		},
		Type:        TypeStatic,
		Size:        "12x36 ft",
		Price:       3500,
		Status:      StatusAvailable,
		Impressions: "120,000+ daily",
		Images:      []string{stockBillboardImage},
		Features: LocalizedList{
			En: []string{"Premium Location", "Illuminated", "High Visibility", "Weather Resistant"},
			Ar: []string{"موقع متميز", "مضاءة", "رؤية عالية", "مقاومة للعوامل الجوية"},
		},
		MapPosition: percentPosition(42, 38),
		Rating:      4.5,
		NearbyAttractions: LocalizedList{
			En: []string{"Centria Mall", "Mode Al Faisaliah", "Tahlia Street Restaurants"},
			Ar: []string{"سنتريا مول", "مود الفيصلية", "مطاعم شارع التحلية"},
		},
	},
	{
		ID: "3",
		Title: LocalizedText{
			En: "LED Video Wall - Granada Mall",
			Ar: "جدار فيديو LED - غرناطة مول",
		},
		Location: LocalizedText{
			En: "Granada Mall, Eastern Ring Road, Riyadh",
			Ar: "غرناطة مول، الطريق الدائري الشرقي، الرياض",
		},
		Description: LocalizedText{
			En: "Indoor LED video wall located at the main entrance of Granada Mall, perfect for retail advertising.",
			Ar: "جدار فيديو LED داخلي يقع عند المدخل الرئيسي لغرناطة مول، مثالي للإعلانات التجارية.",
		},
		Type:        TypeLED,
		Size:        "8x12 ft",
		Price:       2800,
		Status:      StatusBooked,
		Impressions: "85,000+ daily",
		Images:      []string{stockBillboardImage},
		Features: LocalizedList{
			En: []string{"High Foot Traffic", "Premium Mall Location", "Video Capability", "Sound Options Available"},
			Ar: []string{"حركة مشاة عالية", "موقع متميز في المول", "إمكانية عرض الفيديو", "خيارات صوتية متاحة"},
		},
		MapPosition: percentPosition(55, 32),
		Rating:      4.2,
		NearbyAttractions: LocalizedList{
			En: []string{"Granada Mall", "Granada Business Park", "Eastern Ring Road"},
			Ar: []string{"غرناطة مول", "غرناطة بزنس بارك", "الطريق الدائري الشرقي"},
		},
	},
	{
		ID: "4",
		Title: LocalizedText{
			En: "Highway Digital Billboard - Airport Road",
			Ar: "لوحة إعلانية رقمية على الطريق السريع - طريق المطار",
		},
		Location: LocalizedText{
			En: "King Khalid International Airport Road, Riyadh",
			Ar: "طريق مطار الملك خالد الدولي، الرياض",
		},
		Description: LocalizedText{
			En: "Strategic digital billboard on the main route to King Khalid International Airport.",
			Ar: "لوحة إعلانية رقمية استراتيجية على الطريق الرئيسي لمطار الملك خالد الدولي.",
		},
		Type:        TypeDigital,
		Size:        "14x48 ft",
		Price:       4500,
		Status:      StatusAvailable,
		Impressions: "130,000+ daily",
		Images:      []string{stockBillboardImage},
		Features: LocalizedList{
			En: []string{"Airport Traffic", "Digital Display", "24/7 Operation", "Multiple Ad Slots"},
			Ar: []string{"حركة المطار", "عرض رقمي", "تشغيل على مدار الساعة", "فتحات إعلانية متعددة"},
		},
		MapPosition: percentPosition(65, 25),
		Rating:      4.6,
		NearbyAttractions: LocalizedList{
			En: []string{"King Khalid International Airport", "IKEA", "Riyadh Front"},
			Ar: []string{"مطار الملك خالد الدولي", "ايكيا", "واجهة الرياض"},
		},
	},
	{
		ID: "5",
		Title: LocalizedText{
			En: "Wall-mounted Billboard - Diplomatic Quarter",
			Ar: "لوحة إعلانية مثبتة على الحائط - الحي الدبلوماسي",
		},
		Location: LocalizedText{
			En: "Diplomatic Quarter, Riyadh",
			Ar: "الحي الدبلوماسي، الرياض",
		},
		Description: LocalizedText{
			En: "Exclusive wall-mounted billboard in the prestigious Diplomatic Quarter, targeting high-income residents and diplomats.",
			Ar: "لوحة إعلانية حصرية مثبتة على الحائط في الحي الدبلوماسي المرموق، تستهدف السكان ذوي الدخل المرتفع والدبلوماسيين.",
		},
		Type:        TypeStatic,
		Size:        "10x30 ft",
		Price:       6000,
		Status:      StatusAvailable,
		Impressions: "45,000+ daily",
		Images:      []string{stockBillboardImage},
		Features: LocalizedList{
			En: []string{"Premium Location", "Exclusive Audience", "Illuminated", "High-End Design"},
			Ar: []string{"موقع متميز", "جمهور حصري", "مضاءة", "تصميم راقي"},
		},
		MapPosition: percentPosition(28, 55),
		Rating:      4.9,
		NearbyAttractions: LocalizedList{
			En: []string{"Diplomatic Quarter", "Embassies", "Diplomatic Club", "Wadi Hanifah"},
			Ar: []string{"الحي الدبلوماسي", "السفارات", "النادي الدبلوماسي", "وادي حنيفة"},
		},
	},
	{
		ID: "6",
		Title: LocalizedText{
			En: "Digital Billboard - King Abdullah Financial District",
			Ar: "لوحة إعلانية رقمية - مركز الملك عبدالله المالي",
		},
		Location: LocalizedText{
			En: "King Abdullah Financial District, Riyadh",
			Ar: "مركز الملك عبدالله المالي، الرياض",
		},
		Description: LocalizedText{
			En: "Modern digital billboard in the heart of Riyadh's new financial hub, targeting business professionals.",
			Ar: "لوحة إعلانية رقمية حديثة في قلب المركز المالي الجديد بالرياض، تستهدف المهنيين في مجال الأعمال.",
		},
		Type:        TypeDigital,
		Size:        "12x36 ft",
		Price:       5500,
		Status:      StatusBooked,
		Impressions: "100,000+ daily",
		Images:      []string{stockBillboardImage},
		Features: LocalizedList{
			En: []string{"Business District", "High-Resolution Display", "Multiple Ad Rotations", "Analytics Dashboard"},
			Ar: []string{"منطقة أعمال", "شاشة عالية الدقة", "تناوب إعلانات متعددة", "لوحة تحليلات"},
		},
		MapPosition: percentPosition(48, 60),
		Rating:      4.7,
		NearbyAttractions: LocalizedList{
			En: []string{"KAFD", "KAFD Conference Center", "Financial Academy", "KAFD Grand Mosque"},
			Ar: []string{"مركز الملك عبدالله المالي", "مركز مؤتمرات كافد", "الأكاديمية المالية", "جامع كافد الكبير"},
		},
	},
}

const stockBillboardImage = "https://images.unsplash.com/photo-1617550523898-b3e8dadf8dfe?ixlib=rb-4.0.3&ixid=MnwxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8&auto=format&fit=crop&w=2340&q=80"

func percentPosition(x, y float64) MapPosition {
	return MapPosition{X: &x, Y: &y}
}
