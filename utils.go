package lotto

// HasDistinctDigits reports whether id reads as TicketDigits pairwise-distinct
// decimal digits. A leading zero shortens the decimal form, so values with
// fewer than TicketDigits digits are treated as zero-padded.
func HasDistinctDigits(id TicketID) bool {
	var used [10]bool
	v := uint32(id)

	for i := 0; i < TicketDigits; i++ {
		d := v % 10
		if used[d] {
			return false
		}
		used[d] = true
		v /= 10
	}

	return v == 0
}

// FormatTicket renders a ticket identifier as its zero-padded 6-digit form
func FormatTicket(id TicketID) string {
	buf := [TicketDigits]byte{}
	v := uint32(id)
	for i := TicketDigits - 1; i >= 0; i-- {
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[:])
}
