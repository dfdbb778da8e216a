package handlers

import "strconv"

// parsePage 页码从 1 开始，映射为从 0 开始的下标；缺省或非法时为第一页
func (a *App) parsePage(pageStr string) int {
	page, err := strconv.ParseUint(pageStr, 10, 31)
	if err != nil || page < 1 {
		return 0
	}
	return int(page - 1)
}
