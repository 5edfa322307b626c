package pocketpilot

// INR is a helper for tests to create rupee money from const
func INR(v float64) Money { return M(v, "INR") }

// NO is a helper for tests to create money with no currency set
func NO(v float64) Money { return M(v, "") }

// month is a helper for tests to parse a month or panic
func month(s string) Month {
	m, err := ParseMonth(s)
	if err != nil {
		panic(err.Error())
	}
	return m
}

// day is a helper for tests to parse a date or panic
func day(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err.Error())
	}
	return d
}
