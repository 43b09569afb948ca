package sheet

var NormalizeHeader = normalizeHeader
