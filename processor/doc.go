// Package processor compiles one tab-separated data table into a binary row file.
//
// A source table is a grid of text cells. Designated header rows give every
// column its name, type keyword, optional default value and optional comment;
// rows from the content start row onwards carry data. Rows whose first cell
// starts with the comment marker ("#") are ignored, as are columns whose name
// is blank or whose type is a comment type.
//
//	#	Hero
//	#	Id	Name	Speed	Tags
//	#	int	string	float	string[]
//	#	key	display name	m/s	labels
//		1	Arthas	5.5	paladin,human
//		2	Jaina	4	mage,human
//
// New parses the grid, binds a codec from the registry to each column and
// interns every string cell. The Processor is immutable afterwards and offers
// bounds-checked queries over the grid, the columns and the string table.
//
// # Output
//
// GenerateDataFile writes one record per data row: a 7-bit encoded byte length
// followed by the encoded cells. When a cell cannot be encoded, the column's
// default value is tried; if the column is the id column, has no default, or
// the default fails too, the whole row is left out and the failure is logged.
// No partial record is ever written.
//
// GenerateStringFile writes the string asset that resolves string indices.
// GenerateCodeFile runs a CodeGenerator hook over a text template.
package processor
