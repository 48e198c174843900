package browser

// maxScannedElements bounds the DOM snapshot so huge pages don't blow up the
// prompt budget.
const maxScannedElements = 600

const highlightClickScript = `(e) => e.style.border = "3px solid #00FF00"`

const highlightTypeScript = `(e) => e.style.border = "3px solid blue"`

const scrollDownScript = `() => { window.scrollBy(0, window.innerHeight * 0.7); return true; }`

const scrollUpScript = `() => { window.scrollBy(0, -window.innerHeight * 0.7); return true; }`

// observeElementsScript tags visible interactive elements with sequential
// data-agent-id attributes and returns a JSON summary of them. Indices are
// only valid until the next DOM change.
const observeElementsScript = `function() {
    const MAX_ITEMS = 600;

    document.querySelectorAll('[data-agent-id]').forEach(el => el.removeAttribute('data-agent-id'));

    const items = [];
    let idCounter = 1;
    const seen = new Set();

    function isVisible(el) {
        const rect = el.getBoundingClientRect();
        if (rect.width < 1 || rect.height < 1) return false;
        const style = window.getComputedStyle(el);
        return style.visibility !== 'hidden' && style.display !== 'none' && style.opacity !== '0';
    }

    function label(el, fallback) {
        let t = el.innerText || el.getAttribute('aria-label') || el.getAttribute('placeholder') || "";
        t = t.replace(/[\n\r]+/g, " ").trim().substring(0, 50);
        return t || fallback;
    }

    function register(el, tag, text) {
        seen.add(el);
        const id = idCounter++;
        el.setAttribute('data-agent-id', String(id));
        items.push({ id, tag, text, interactive: true });
    }

    const all = document.body.querySelectorAll('*');

    for (const el of all) {
        if (items.length >= MAX_ITEMS) break;
        if (seen.has(el)) continue;
        if (!isVisible(el)) continue;

        const tagName = el.tagName.toLowerCase();
        const role = el.getAttribute('role');
        const style = window.getComputedStyle(el);
        const clickableStyle = style.cursor === 'pointer';

        // Rich text inputs (contenteditable editors, chat boxes).
        if (el.isContentEditable || role === 'textbox') {
            if (el.parentElement && seen.has(el.parentElement)) continue;
            register(el, 'input', "[INPUT] " + label(el, "Text Editor"));
            continue;
        }

        if (tagName === 'input' || tagName === 'textarea') {
            if (el.type === 'checkbox' || el.type === 'radio') {
                let lbl = (el.labels && el.labels.length > 0) ? el.labels[0].innerText : "Checkbox";
                const state = el.checked ? ' (V)' : ' ( )';
                register(el, 'checkbox', "[SELECT] " + lbl + state);
            } else if (el.type === 'submit' || el.type === 'button') {
                register(el, 'button', "[ACTION] " + (el.value || "Button"));
            } else {
                register(el, 'input', "[INPUT] " + (el.placeholder || el.value || "Text Field"));
            }
            continue;
        }

        if (tagName === 'a') {
            const href = el.getAttribute('href');
            if (!href && !el.getAttribute('onclick') && !role && !clickableStyle) continue;
            register(el, 'link', "[NAVIGATE] " + label(el, "Link"));
            continue;
        }

        if (tagName === 'button' || role === 'button') {
            register(el, 'button', "[ACTION] " + label(el, "Button"));
            continue;
        }

        if (tagName === 'select') {
            register(el, 'select', "[SELECT] " + label(el, "Dropdown"));
            continue;
        }

        // Other clickable containers (SPA widgets), skipping children of
        // elements already registered.
        if ((tagName === 'div' || tagName === 'span' || tagName === 'li' || tagName === 'img' || tagName === 'svg') && clickableStyle) {
            const rect = el.getBoundingClientRect();
            if (rect.width > 500 && rect.height > 500) continue;

            let parent = el.parentElement;
            let covered = false;
            while (parent && parent !== document.body) {
                if (seen.has(parent)) { covered = true; break; }
                parent = parent.parentElement;
            }
            if (covered) continue;

            register(el, 'clickable', "[CLICK] " + label(el, "Item"));
        }
    }

    return JSON.stringify(items);
}`
