package imposition

// PiecesPerSheet computes how many finished pieces fit on one sheet using a
// simple grid fit with 90-degree rotation allowed. Each finished dimension is
// padded by twice the bleed before fitting. The result is floored at 1 so the
// downstream estimate never divides by zero; degenerate inputs degrade to the
// same floor instead of erroring because this feeds price estimates, not
// production specs.
func PiecesPerSheet(finishedWidthMM, finishedHeightMM, sheetWidthMM, sheetHeightMM, bleedMM int) int {
	pw := finishedWidthMM + 2*bleedMM
	ph := finishedHeightMM + 2*bleedMM
	if pw <= 0 || ph <= 0 || sheetWidthMM <= 0 || sheetHeightMM <= 0 {
		return 1
	}

	upright := (sheetWidthMM / pw) * (sheetHeightMM / ph)
	rotated := (sheetWidthMM / ph) * (sheetHeightMM / pw)

	best := upright
	if rotated > best {
		best = rotated
	}
	if best < 1 {
		return 1
	}
	return best
}

// SheetsNeeded returns ceil(quantity / piecesPerSheet), floored at 1.
// A non-positive piecesPerSheet falls back to one piece per sheet.
func SheetsNeeded(quantity, piecesPerSheet int) int {
	if piecesPerSheet <= 0 {
		if quantity > 1 {
			return quantity
		}
		return 1
	}
	sheets := (quantity + piecesPerSheet - 1) / piecesPerSheet
	if sheets < 1 {
		return 1
	}
	return sheets
}
