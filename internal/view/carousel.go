package view

// NextSlide advances the news carousel, wrapping at the end
func NextSlide(current, count int) int {
	if count <= 0 {
		return 0
	}
	return (current + 1) % count
}

// PrevSlide moves the news carousel back, wrapping at the start
func PrevSlide(current, count int) int {
	if count <= 0 {
		return 0
	}
	return (current - 1 + count) % count
}
