package ko

func broken(int {
