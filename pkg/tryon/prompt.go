package tryon

import (
	"fmt"

	"github.com/furiarock/mockstudio/pkg/garment"
)

// PoseInstruction tells the model how to pose the person so the zone on
// view v faces the camera. It is a pure function of v.
func PoseInstruction(v garment.View) string {
	switch v {
	case garment.Back:
		return "CRITICAL: Generate the person standing with their BACK facing the camera. " +
			"We need to see the BACK of the t-shirt to apply the design there. Turn the person around 180 degrees."
	case garment.Left:
		return "CRITICAL: Generate the person in a side profile view, showing their LEFT arm and side clearly. " +
			"We need to apply the design on the left sleeve."
	case garment.Right:
		return "CRITICAL: Generate the person in a side profile view, showing their RIGHT arm and side clearly. " +
			"We need to apply the design on the right sleeve."
	default:
		return "Generate the person facing the camera directly (Front view). Ensure the chest area is visible."
	}
}

const promptTemplate = `Act as a professional fashion photographer and photo editor.
Input 1: A photo of a person (User Reference).
Input 2: A graphic design / logo.

Task: Create a realistic photo of the person from Input 1 wearing a plain %s cotton t-shirt.

POSE REQUIREMENT: %s

COMPOSITION: Apply the graphic design from Input 2 onto the t-shirt realistically.
- If Back view: Place design on the center of the back.
- If Side view: Place design on the sleeve.
- If Front view: Place design on the chest.

Follow the fabric folds, lighting, and shadows of the shirt.
Keep the person's identity (hair, skin tone, build) consistent with Input 1, but adapt their pose to match the POSE REQUIREMENT strictly.
`

// Prompt builds the full instruction for a garment of colorHex seen from v.
func Prompt(colorHex string, v garment.View) string {
	return fmt.Sprintf(promptTemplate, colorHex, PoseInstruction(v))
}
