package silhouette

import "github.com/furiarock/mockstudio/pkg/render/pathdata"

// Outlines.
var (
	frontOutline = pathdata.MustParse("M260,140 C300,150 360,150 400,120 Q500,170 600,120 C640,150 700,150 740,140 L860,280 C865,290 860,305 845,310 L780,350 L720,310 Q715,500 715,850 C600,865 400,865 285,850 Q285,500 280,310 L220,350 L155,310 C140,305 135,290 140,280 Z")
	backOutline  = pathdata.MustParse("M260,140 C300,135 360,135 400,140 Q500,150 600,140 C640,135 700,135 740,140 L860,280 L780,350 L720,310 Q715,500 715,850 C600,865 400,865 285,850 Q285,500 280,310 L220,350 L140,280 Z")
	sideOutline  = pathdata.MustParse("M400,140 L600,140 L620,160 L650,280 L580,320 L550,280 L550,850 L450,850 L450,280 L420,320 L350,280 L380,160 Z")
)

// Front details.
var (
	frontCollarInside = pathdata.MustParse("M400,120 Q500,170 600,120 Q500,145 400,120")
	frontCollarRib    = pathdata.MustParse("M400,120 Q500,170 600,120")

	frontArmpitLeft1  = pathdata.MustParse("M280,310 Q350,380 420,450 L400,480 Q320,400 280,330")
	frontArmpitLeft2  = pathdata.MustParse("M280,350 Q380,450 450,550 L420,580 Q350,480 280,380")
	frontArmpitRight1 = pathdata.MustParse("M720,310 Q650,380 580,450 L600,480 Q680,400 720,330")
	frontArmpitRight2 = pathdata.MustParse("M720,350 Q620,450 550,550 L580,580 Q650,480 720,380")
	frontDrapeLeft    = pathdata.MustParse("M350,600 Q400,750 380,850 L420,850 Q450,750 400,600")
	frontDrapeRight   = pathdata.MustParse("M650,600 Q600,750 620,850 L580,850 Q550,750 600,600")
	frontHem          = pathdata.MustParse("M285,850 C400,865 600,865 715,850 L715,840 C600,855 400,855 285,840 Z")

	frontChestLeft     = pathdata.Ellipse(400, 280, 80, 60)
	frontChestRight    = pathdata.Ellipse(600, 280, 80, 60)
	frontShoulderLeft  = pathdata.MustParse("M260,140 L400,120 L400,160 Z")
	frontShoulderRight = pathdata.MustParse("M740,140 L600,120 L600,160 Z")
	frontRidgeLeft     = pathdata.MustParse("M290,300 Q360,370 430,440")
	frontRidgeRight    = pathdata.MustParse("M710,300 Q640,370 570,440")

	frontSeamLeft  = pathdata.MustParse("M280,310 C270,250 260,180 260,140")
	frontSeamRight = pathdata.MustParse("M720,310 C730,250 740,180 740,140")
)

// Back details.
var (
	backNeckRib    = pathdata.MustParse("M400,140 Q500,150 600,140")
	backSpine      = pathdata.MustParse("M500,160 L500,800")
	backBladeLeft  = pathdata.Ellipse(380, 250, 70, 50)
	backBladeRight = pathdata.Ellipse(620, 250, 70, 50)
)

var (
	sideTorsoShadow = pathdata.Rect(450, 140, 100, 710)
	groundShadow    = pathdata.Ellipse(500, 870, 280, 25)
)

// Blur radii in unit space.
const (
	foldBlur      = 8.0
	seamBlur      = 1.5
	highlightBlur = 10.0
)
