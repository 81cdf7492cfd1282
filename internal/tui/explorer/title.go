package explorer

import (
	"fmt"
	"strings"
)

var sortFieldLabels = map[sortField]string{
	sortByTitle:      "[F1] Title",
	sortBySubdir:     "[F2] Subdirectory",
	sortByModifiedAt: "[F3] Modified",
	sortByNoteDate:   "[F4] Note Date",
}

var sortOrderLabels = map[sortOrder]string{
	ascending:  "[F5] Ascending",
	descending: "[F6] Descending",
}

func renderListTitle(shown, hidden int, showHidden bool, field sortField, order sortOrder) string {
	counts := []string{activeLabelStyle.Render(fmt.Sprintf("%d shown", shown))}

	hiddenLabel := fmt.Sprintf("%d hidden", hidden)
	if showHidden {
		counts = append(counts, activeLabelStyle.Render(hiddenLabel+" (revealed)"))
	} else {
		counts = append(counts, inactiveLabelStyle.Render(hiddenLabel))
	}

	notesLine := fmt.Sprintf("%s %s",
		headerStyle.Render("Notes:"),
		strings.Join(counts, dividerStyle.String()),
	)

	var fieldStatus []string
	for i := 0; i < len(sortFieldLabels); i++ {
		label := sortFieldLabels[sortField(i)]
		if sortField(i) == field {
			fieldStatus = append(fieldStatus, activeLabelStyle.Render(label))
		} else {
			fieldStatus = append(fieldStatus, inactiveLabelStyle.Render(label))
		}
	}

	var orderStatus []string
	for i := 0; i < len(sortOrderLabels); i++ {
		label := sortOrderLabels[sortOrder(i)]
		if sortOrder(i) == order {
			orderStatus = append(orderStatus, activeLabelStyle.Render(label))
		} else {
			orderStatus = append(orderStatus, inactiveLabelStyle.Render(label))
		}
	}

	sortLine := fmt.Sprintf("%s %s %s %s",
		headerStyle.Render("Sort:"),
		strings.Join(fieldStatus, dividerStyle.String()),
		dividerStyle.String(),
		strings.Join(orderStatus, dividerStyle.String()),
	)

	return fmt.Sprintf("%s\n%s", notesLine, sortLine)
}
