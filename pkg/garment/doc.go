// Package garment holds the fixed garment geometry: the four camera views,
// the print zone registry, preset colors and sizes.
//
// All positions are in a 1000×1000 unit space shared by the silhouette
// renderer, the placement controller and the exporter. The registry is
// immutable; zones are returned in declaration order, which is also the
// order artwork is composited in.
//
//	z := garment.Lookup(garment.Heart)
//	fmt.Println(z.View, z.Area.Width) // front 120
//
// The rotation slider maps onto views through [ViewFromRotation]:
//
//	garment.ViewFromRotation(100) // right
package garment
