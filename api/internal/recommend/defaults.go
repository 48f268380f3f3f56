package recommend

import "farm-management-system/api/internal/models"

var cropDefaults = map[string]models.RecommendationDoc{
	"wheat": {
		BestSeason:           []string{"October", "November"},
		WateringSchedule:     "Water crop after every 20-25 days during initial growth (October-November). Increase frequency to 15-20 days during tillering phase. Reduce to once every 30 days during ripening stage.",
		Fertilizers:          []string{"Urea (100 kg/acre)", "DAP - Di-Ammonium Phosphate (60 kg/acre)", "Potassium (30 kg/acre)"},
		PestPrevention:       []string{"Hexaconazole for Armyworm control", "Tebuconazole for Rust management", "Pyrethrin-based spray for leaf beetles", "Neem oil for mites"},
		ExpectedYieldPerAcre: "40-45 quintals",
		DaysToMaturity:       120,
		CommonDiseases:       []string{"Rust (brown/yellow spots on leaves)", "Powdery Mildew (white powder coating)", "Loose Smut (seed disease)"},
		SoilPreparation:      "Loamy soil is ideal. Add 10-15 tons of farmyard manure per acre",
		Spacing:              "Drill at 22.5 cm row spacing with 50 kg seed per acre",
	},
	"rice": {
		BestSeason:           []string{"June", "July"},
		WateringSchedule:     "Keep field flooded with 5 cm water during growing season. Drain water 7-10 days before harvest. Maintain standing water of 2-3 cm during grain filling stage.",
		Fertilizers:          []string{"Urea (80 kg/acre)", "DAP (50 kg/acre)", "Potassium Chloride (40 kg/acre)"},
		PestPrevention:       []string{"Tricyclazole for Blast control", "Validamycin for Brown Spot disease", "Carbosulfan for Stem Borer", "Methyl Parathion for Leaf Folder"},
		ExpectedYieldPerAcre: "50-55 quintals",
		DaysToMaturity:       150,
		CommonDiseases:       []string{"Blast (dark spots on leaves)", "Brown Spot (circular lesions)", "Leaf Scald (whitish streaks)"},
		SoilPreparation:      "Puddling required. Add 5-7 tons compost per acre",
		Spacing:              "Transplant seedlings 20x15 cm apart, 1-2 seedlings per hill",
	},
	"corn": {
		BestSeason:           []string{"April", "May"},
		WateringSchedule:     "Water after 2-3 days initially. After tassel emergence, increase frequency - water every 3-4 days. Critical period: 15 days before and after pollination requires maximum water.",
		Fertilizers:          []string{"Urea (150 kg/acre)", "DAP (90 kg/acre)", "Potassium Nitrate (60 kg/acre)"},
		PestPrevention:       []string{"Emamectin Benzoate for Borer control", "Lambda Cyhalothrin for Armyworm", "Chlorpyrifos for Fall Armyworm", "Spinosad for shoot fly"},
		ExpectedYieldPerAcre: "60-65 quintals",
		DaysToMaturity:       90,
		CommonDiseases:       []string{"Leaf Blight (long oval lesions)", "Root Rot (brown discoloration)", "Turcicum Blight (narrow cigar-shaped spots)"},
		SoilPreparation:      "Well-drained loamy soil. Add 15 tons farmyard manure",
		Spacing:              "Plant at 60 cm row spacing, 20 cm between plants, 12-14 kg seed per acre",
	},
	"tomato": {
		BestSeason:           []string{"February", "March", "August", "September"},
		WateringSchedule:     "Water daily or alternate days during fruit setting. Reduce frequency after ripening. Avoid wetting foliage to prevent diseases. Use drip irrigation if possible.",
		Fertilizers:          []string{"Urea (80 kg/acre)", "DAP (100 kg/acre)", "Calcium Nitrate (60 kg/acre)", "Zinc Sulfate (10 kg/acre)"},
		PestPrevention:       []string{"Spinosad for Fruit Borer", "Chloropyrifos for Whitefly", "Sulphur dust for Powdery Mildew", "Copper Fungicide for Early Blight"},
		ExpectedYieldPerAcre: "300-350 quintals",
		DaysToMaturity:       70,
		CommonDiseases:       []string{"Early Blight (concentric rings)", "Late Blight (water-soaked lesions)", "Fusarium Wilt (wilting from base)"},
		SoilPreparation:      "Rich loamy soil with good drainage. Add 25 tons compost per acre",
		Spacing:              "Transplant at 60x45 cm or 50x40 cm spacing, 35,000-40,000 plants per acre",
	},
	"potato": {
		BestSeason:           []string{"September", "October"},
		WateringSchedule:     "Water every 7-10 days until emergence. After emergence, maintain soil moisture at 70-80% capacity. Reduce watering 15 days before harvest.",
		Fertilizers:          []string{"Urea (120 kg/acre)", "DAP (100 kg/acre)", "Muriate of Potash (150 kg/acre)"},
		PestPrevention:       []string{"Mancozeb for Late Blight control", "Metalaxyl for Phytophthora", "Imidacloprid for Aphids", "Carbofuran for Stem Borer"},
		ExpectedYieldPerAcre: "200-250 quintals",
		DaysToMaturity:       90,
		CommonDiseases:       []string{"Late Blight (water-soaked lesions)", "Early Blight (target spots)", "Viral diseases (mottling)"},
		SoilPreparation:      "Well-drained loamy soil. Add 20 tons farmyard manure",
		Spacing:              "Plant seed tubers 20 cm apart in rows 60 cm apart, 25-30 kg seed per acre",
	},
	"soybean": {
		BestSeason:           []string{"June", "July"},
		WateringSchedule:     "Light irrigation at planting. Water every 8-10 days during growing season. Critical period: 15 days before and after flowering. Reduce watering after pod formation.",
		Fertilizers:          []string{"DAP (45 kg/acre)", "Potassium (20 kg/acre)", "Rhizobium culture (ensure inoculation)", "Zinc Sulfate (10 kg/acre)"},
		PestPrevention:       []string{"Fenvalerate for Leaf Folder", "Chloropyrifos for Pod Borer", "Carbaryl for Grasshopper", "Neem oil for Spider Mite"},
		ExpectedYieldPerAcre: "18-22 quintals",
		DaysToMaturity:       100,
		CommonDiseases:       []string{"Anthracnose (dark spots)", "Stem Canker (reddish lesions)", "Bacterial pustule (brown spots)"},
		SoilPreparation:      "Well-drained loamy soil. Nitrogen fixation through rhizobia",
		Spacing:              "Sow at 45 cm row spacing, 30-35 seeds per meter, 50-60 kg seed per acre",
	},
	"cotton": {
		BestSeason:           []string{"April", "May"},
		WateringSchedule:     "Water at 7-10 day intervals from June onwards. Increase frequency during boll development (July-August). Reduce watering from September, stop by October.",
		Fertilizers:          []string{"Urea (150 kg/acre)", "DAP (100 kg/acre)", "Potassium Sulphate (50 kg/acre)"},
		PestPrevention:       []string{"Emamectin Benzoate for Bollworm", "Lambda Cyhalothrin for Leaf Roller", "Spinosad for Tobacco Caterpillar", "Sulphur for Mite control"},
		ExpectedYieldPerAcre: "18-22 bales",
		DaysToMaturity:       180,
		CommonDiseases:       []string{"Bacterial Blight (angular lesions)", "Leaf Spot (circular lesions)", "Fusarium Wilt (yellowing)"},
		SoilPreparation:      "Well-drained loamy soil. Add 8-10 tons farmyard manure",
		Spacing:              "Plant at 90 cm row spacing, 60 cm plant spacing, 7.5-8 kg seed per acre",
	},
	"sugarcane": {
		BestSeason:           []string{"October", "November"},
		WateringSchedule:     "Irrigate at 7-10 day intervals during establishment. During growing season, water every 10-15 days. Critical period: 3-6 months after planting. Reduce in winter.",
		Fertilizers:          []string{"Urea (200 kg/acre)", "DAP (100 kg/acre)", "Potassium (60 kg/acre)"},
		PestPrevention:       []string{"Emamectin Benzoate for Shoot Borer", "Chlorpyrifos for Scale Insect", "Carbofuran for Root Grub", "Metaldehyde for Slug"},
		ExpectedYieldPerAcre: "70-80 tons",
		DaysToMaturity:       360,
		CommonDiseases:       []string{"Red Rot (reddish discoloration)", "Wilt (yellowing and wilting)", "Smut (black spore masses)"},
		SoilPreparation:      "Deep, well-drained soil. Add 25-30 tons compost per acre",
		Spacing:              "Plant at 75-90 cm row spacing, 1-2 buds per 30 cm, 35-40 quintals seed per acre",
	},
}

// genericDefault answers for crops outside the table. The source feed
// expresses maturity for the generic case as a 100-120 day range; the
// midpoint stands in for it here.
var genericDefault = models.RecommendationDoc{
	BestSeason:           []string{"Year-round (varies by region)"},
	WateringSchedule:     "Typically 2-3 times per week. Adjust based on rainfall and soil moisture.",
	Fertilizers:          []string{"Urea", "DAP (Di-Ammonium Phosphate)", "Potassium Fertilizer"},
	PestPrevention:       []string{"Regular monitoring", "Neem oil spray", "Pesticide application based on pest identification"},
	ExpectedYieldPerAcre: "40-60 quintals",
	DaysToMaturity:       110,
	CommonDiseases:       []string{"Check local agricultural advisory office for specific diseases"},
	SoilPreparation:      "Prepare soil based on crop requirements",
	Spacing:              "Consult local agricultural extension office",
}
