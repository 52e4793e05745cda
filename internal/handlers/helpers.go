package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// queryInt reads an integer query parameter. Absent or unparseable
// values come back as 0 and fall through to the listing defaults.
func queryInt(ctx *gin.Context, name string) int {
	value, err := strconv.Atoi(ctx.Query(name))

	if err != nil {
		return 0
	}

	return value
}

func toJSONColumn(doc map[string]interface{}) (datatypes.JSON, error) {
	raw, err := json.Marshal(doc)

	if err != nil {
		return nil, err
	}

	return datatypes.JSON(raw), nil
}

func fromJSONColumn(doc datatypes.JSON) interface{} {
	if len(doc) == 0 {
		return nil
	}

	var value interface{}

	if err := json.Unmarshal(doc, &value); err != nil {
		return nil
	}

	return value
}
