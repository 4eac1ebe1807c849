package lazyre

import "testing"

func TestReplace_Basic(t *testing.T) {
	re := MustCompile(`test`, 0)
	str, err := re.Replace("this is a test", "unit", -1, -1)
	if err != nil {
		t.Fatalf("Unexpected err: %v", err)
	}
	if want, got := "this is a unit", str; want != got {
		t.Fatalf("Replace failed, wanted %v, got %v", want, got)
	}
}

func TestReplace_WholeMatch(t *testing.T) {
	re := MustCompile(`\d+?`, 0)
	str, err := re.Replace("a12b", "<$0>", -1, -1)
	if err != nil {
		t.Fatalf("Unexpected err: %v", err)
	}
	if want, got := "a<1><2>b", str; want != got {
		t.Fatalf("Replace failed, wanted %v, got %v", want, got)
	}
}

func TestReplace_Dollars(t *testing.T) {
	re := MustCompile(`x`, 0)
	str, err := re.Replace("axb", "$$1$a$", -1, -1)
	if err != nil {
		t.Fatalf("Unexpected err: %v", err)
	}
	if want, got := "a$1$a$b", str; want != got {
		t.Fatalf("Replace failed, wanted %v, got %v", want, got)
	}
}

func TestReplace_Count(t *testing.T) {
	re := MustCompile(`o`, 0)
	str, err := re.Replace("foo boo", "0", -1, 2)
	if err != nil {
		t.Fatalf("Unexpected err: %v", err)
	}
	if want, got := "f00 boo", str; want != got {
		t.Fatalf("Replace failed, wanted %v, got %v", want, got)
	}
}

func TestReplace_StartAt(t *testing.T) {
	re := MustCompile(`o`, 0)
	str, err := re.Replace("foo boo", "0", 3, -1)
	if err != nil {
		t.Fatalf("Unexpected err: %v", err)
	}
	if want, got := "foo b00", str; want != got {
		t.Fatalf("Replace failed, wanted %v, got %v", want, got)
	}
}

func TestReplace_NoMatch(t *testing.T) {
	re := MustCompile(`z+`, 0)
	str, err := re.Replace("foo", "bar", -1, -1)
	if err != nil {
		t.Fatalf("Unexpected err: %v", err)
	}
	if want, got := "foo", str; want != got {
		t.Fatalf("Replace failed, wanted %v, got %v", want, got)
	}
}

func TestReplace_BadArgs(t *testing.T) {
	re := MustCompile(`o`, 0)
	if _, err := re.Replace("foo", "0", -1, -2); err == nil {
		t.Fatal("expected an error for count below -1")
	}
	if _, err := re.Replace("foo", "0", 4, -1); err == nil {
		t.Fatal("expected an error for a start past the end")
	}
}
