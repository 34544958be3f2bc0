//Create a table of the flags of a list of ProcessedLocales

package execute

import (
	"bytes"
	"sort"
)

// CreateFlagTable creates an aligned ascii table that shows which flags are set on which ProcessedLocales. The row headers are the ProcessedLocaleFlagNames.ShortName and the column headers are the ProcessedLocale.LocaleIdentifier.
//
// Format: 1 row per locale. 1 column per flag. 4 letter flag names are split over 2 columns
//
// Symbols: | column separator, * values
func (list ProcessedLocaleList) CreateFlagTable() []string {
	//Get which ProcessedLocaleFlags were used and the maximum length of the locale identifiers
	usedPLFlags := make([]bool, len(ProcessedLocaleFlagNames))
	maxLocaleLen := 2 //All columns must be at least 2 bytes
	for _, pl := range list {
		if len(pl.LocaleIdentifier) > maxLocaleLen {
			maxLocaleLen = len(pl.LocaleIdentifier)
		}
		for flagIndex, flagInfo := range ProcessedLocaleFlagNames {
			if pl.Flags&flagInfo.Flag != 0 {
				usedPLFlags[flagIndex] = true
			}
		}
	}

	//Get the list of flags to use
	flagsList := make([]int, 0, len(usedPLFlags))
	for flagIndex, wasUsed := range usedPLFlags {
		if wasUsed {
			flagsList = append(flagsList, flagIndex)
		}
	}

	//Pull the used flag values and create a byte array of the row format
	const charColSeparator, charSpacer, charFlagSet = '|', ' ', '*'
	const colWidth, colSepWidth = 2, 1 //All column widths are 2 characters
	flagValues := make([]struct {
		flag ProcessedLocaleFlag
		pos  int
	}, len(flagsList))
	rowBytes := bytes.Repeat([]byte{charSpacer}, colSepWidth*2+maxLocaleLen+len(flagsList)*(colWidth+colSepWidth))
	rowBytes[0] = charColSeparator
	rowBytes[maxLocaleLen+colSepWidth] = charColSeparator
	for localIndex, lookupIndex := range flagsList {
		fv := &flagValues[localIndex]
		fv.flag = ProcessedLocaleFlagNames[lookupIndex].Flag
		fv.pos = maxLocaleLen + colSepWidth + colSepWidth + localIndex*(colWidth+colSepWidth)
		rowBytes[fv.pos+colWidth] = charColSeparator
	}

	//Create the 2 header rows
	outRows := make([]string, len(list)+2)
	rowNum := 0
	for i := 0; i < 2; i++ {
		for localIndex, lookupIndex := range flagsList {
			fv := flagValues[localIndex]
			name := ProcessedLocaleFlagNames[lookupIndex].ShortName
			copy(rowBytes[fv.pos:fv.pos+colWidth], name[i*colWidth:(i+1)*colWidth])
		}
		outRows[rowNum] = string(rowBytes)
		rowNum++
	}
	for localIndex := range flagsList {
		rowBytes[flagValues[localIndex].pos+1] = charSpacer
	}

	//Output the rows sorted by locale identifier
	identifiers := getMapKeys(list)
	sort.Strings(identifiers)
	localeIdentSpacer := bytes.Repeat([]byte{charSpacer}, maxLocaleLen)
	for _, identifier := range identifiers {
		pl := list[identifier]
		copy(rowBytes[colSepWidth:], localeIdentSpacer)
		copy(rowBytes[colSepWidth:], pl.LocaleIdentifier)
		for _, f := range flagValues {
			rowBytes[f.pos] = cond[byte](pl.Flags&f.flag == 0, charSpacer, charFlagSet)
		}
		outRows[rowNum] = string(rowBytes)
		rowNum++
	}

	return outRows
}
